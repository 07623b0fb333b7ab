package services

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// Analyzer sequences the analytics engine over one corpus snapshot.
type Analyzer struct {
	policy    domain.AnalysisPolicy
	tokenizer driven.Tokenizer
	phrases   driven.PhraseExtractor
}

// NewAnalyzer creates an analyzer for the given policy and lexical toolkit.
// The phrase extractor may be nil.
func NewAnalyzer(
	policy domain.AnalysisPolicy,
	tokenizer driven.Tokenizer,
	phrases driven.PhraseExtractor,
) *Analyzer {
	return &Analyzer{
		policy:    policy,
		tokenizer: tokenizer,
		phrases:   phrases,
	}
}

// readResult is the outcome of reading and analysing one note.
type readResult struct {
	text  string
	err   error
	depth domain.ContentDepthAnalysis
}

// Analyze runs a full analysis. now is used for every recency calculation.
// A note whose text cannot be read is reported in the results' failures and
// does not stop the run. Cancelling ctx aborts the run without results.
func (a *Analyzer) Analyze(
	ctx context.Context,
	source driven.DocumentSource,
	index driven.LinkIndex,
	now time.Time,
) (*domain.AnalysisResults, error) {
	start := time.Now()

	// 1. Snapshot the corpus
	logger.Section("Analysis")
	notes, err := source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	logger.Info("Analysing %d notes", len(notes))

	// 2. Connections
	conns, err := ExtractConnections(ctx, notes, index)
	if err != nil {
		return nil, fmt.Errorf("extract connections: %w", err)
	}

	// 3. Structural metrics over the whole connection set
	graph := BuildGraph(conns)
	centrality := Centrality(graph)
	strength := NewStrengthScorer(a.policy).Score(conns, now)
	logger.Debug("Graph: %d nodes, %d edges", len(graph), graph.EdgeCount())

	// 4. Read and analyse each note's text
	reads, err := a.readAll(ctx, source, notes)
	if err != nil {
		return nil, err
	}

	depth := make([]domain.ContentDepthAnalysis, 0, len(notes))
	failures := make([]domain.DocumentFailure, 0)
	texts := make([]string, 0, len(notes))
	for i := range reads {
		if reads[i].err != nil {
			failures = append(failures, domain.DocumentFailure{
				Path:   notes[i].Path,
				Reason: reads[i].err.Error(),
			})
			continue
		}
		depth = append(depth, reads[i].depth)
		texts = append(texts, reads[i].text)
	}

	// 5. Concepts over the joined corpus
	concepts := NewConceptExtractor(a.tokenizer, a.policy).Extract(strings.Join(texts, "\n\n"))
	logger.Debug("Extracted %d concepts", len(concepts))

	// 6. Relations, reusing text already read
	relations, err := NewConceptRelationMapper(a.tokenizer, a.policy).
		Map(ctx, concepts, conns, cachedFetcher(notes, reads, source))
	if err != nil {
		return nil, fmt.Errorf("map concept relations: %w", err)
	}

	// 7. Assemble the snapshot
	results := &domain.AnalysisResults{
		StartedAt:       now,
		Connections:     conns,
		Graph:           graph,
		Centrality:      centrality,
		Strength:        strength,
		WeakConnections: DetectWeakConnections(conns, a.policy.WeakThreshold),
		IsolatedNotes:   DetectIsolatedNotes(conns),
		TopStrength:     TopStrength(strength, a.policy.TopRankings),
		TopCentrality:   TopCentrality(centrality, a.policy.TopRankings),
		ContentDepth:    depth,
		Concepts:        concepts,
		Relations:       relations,
		Failures:        failures,
		Partial:         len(failures) > 0,
		Duration:        time.Since(start),
	}

	if results.Partial {
		logger.Warn("%d notes could not be read", len(failures))
	}
	logger.Info("%s", results.Summary())

	return results, nil
}

// readAll reads and analyses every note with bounded parallelism.
// Results are indexed by note position so completion order does not matter.
func (a *Analyzer) readAll(
	ctx context.Context,
	source driven.DocumentSource,
	notes []domain.Note,
) ([]readResult, error) {
	workers := a.policy.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	content := NewContentAnalyzer(a.tokenizer, a.phrases, a.policy)
	reads := make([]readResult, len(notes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range notes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := source.ReadText(gctx, notes[i])
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("Reading %s: %v", notes[i].Path, err)
				reads[i].err = err
				return nil
			}
			reads[i].text = text
			reads[i].depth = content.Analyze(notes[i].Path, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reads, nil
}

// cachedFetcher serves texts already read and remembers failed reads.
// Notes outside the snapshot fall back to the source.
func cachedFetcher(notes []domain.Note, reads []readResult, source driven.DocumentSource) driven.TextFetcher {
	byPath := make(map[string]*readResult, len(notes))
	for i := range notes {
		byPath[notes[i].Path] = &reads[i]
	}
	return func(ctx context.Context, note domain.Note) (string, error) {
		if r, ok := byPath[note.Path]; ok {
			return r.text, r.err
		}
		return source.ReadText(ctx, note)
	}
}
