package services

import (
	"context"
	"time"

	"github.com/custodia-labs/notegraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/tokenizers/lexical"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// stale is older than any recency window used in tests.
var stale = testNow.AddDate(0, -6, 0)

func note(path string, modified time.Time) domain.Note {
	return domain.Note{Path: path, LastModified: modified}
}

// conn builds a connection from resolved link lists.
func conn(path string, links, backlinks []string) domain.NoteConnection {
	return NewConnection(note(path, stale), links, backlinks)
}

// cycleVault builds the A -> B -> C -> A vault.
func cycleVault() *memory.Vault {
	v := memory.NewVault("mem://cycle")
	v.AddNote(note("a.md", stale), "Alpha links to beta.", "b.md")
	v.AddNote(note("b.md", stale), "Beta links to gamma.", "c.md")
	v.AddNote(note("c.md", stale), "Gamma links to alpha.", "a.md")
	return v
}

func newTestAnalyzer(policy domain.AnalysisPolicy) *Analyzer {
	tok := lexical.New()
	return NewAnalyzer(policy, tok, lexical.NewPhraseExtractor(tok))
}

// stubIndex is a LinkIndex with canned answers.
type stubIndex struct {
	links    map[string][]string
	linkErr  map[string]error
	resolved domain.ResolvedLinkTable
	tableErr error
}

func (s *stubIndex) OutgoingLinks(_ context.Context, n domain.Note) ([]string, error) {
	if err := s.linkErr[n.Path]; err != nil {
		return nil, err
	}
	return s.links[n.Path], nil
}

func (s *stubIndex) ResolvedLinks(context.Context) (domain.ResolvedLinkTable, error) {
	return s.resolved, s.tableErr
}
