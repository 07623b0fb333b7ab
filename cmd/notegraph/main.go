// Command notegraph analyses the link structure and content of a Markdown
// vault.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/notegraph/internal/adapters/driven/config/file"
	"github.com/custodia-labs/notegraph/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/notegraph/internal/adapters/driving/cli"
	"github.com/custodia-labs/notegraph/internal/connectors/filesystem"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/core/services"
	"github.com/custodia-labs/notegraph/internal/logger"
	"github.com/custodia-labs/notegraph/internal/tokenizers/lexical"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	os.Exit(run())
}

func run() int {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)

	// Storage is optional: analysis still works when the database cannot be
	// opened, only history is unavailable.
	var analysisStore driven.AnalysisStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Run history disabled: %v", err)
	} else {
		defer store.Close()
		analysisStore = store.AnalysisStore()
	}

	tokenizer := lexical.New()
	analysisService := services.NewAnalysisService(
		filesystem.NewOpener(),
		settingsService,
		analysisStore,
		tokenizer,
		lexical.NewPhraseExtractor(tokenizer),
	)
	watchService := services.NewReanalyser(
		analysisService,
		filesystem.NewWatcher(),
		settingsService,
		services.DefaultDebounce,
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Analysis: analysisService,
		Settings: settingsService,
		Watch:    watchService,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
