package services

import (
	"context"
	"sort"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
	"github.com/custodia-labs/notegraph/internal/logger"
)

// ConceptRelationMapper collects the terms that share a sentence with each
// concept anywhere in the corpus.
type ConceptRelationMapper struct {
	tokenizer driven.Tokenizer
	stops     stopList
}

// NewConceptRelationMapper creates a mapper honouring the policy stop-words.
func NewConceptRelationMapper(tokenizer driven.Tokenizer, policy domain.AnalysisPolicy) *ConceptRelationMapper {
	return &ConceptRelationMapper{
		tokenizer: tokenizer,
		stops:     newStopList(tokenizer, policy.StopWords),
	}
}

// sentence is one tokenized sentence.
type sentence struct {
	tokens []string
	set    map[string]struct{}
}

// Map returns the related terms of every concept. Each note's text is
// fetched and split into sentences once, then reused for every concept.
// Notes whose text cannot be fetched are skipped.
func (m *ConceptRelationMapper) Map(
	ctx context.Context,
	concepts []domain.Concept,
	conns []domain.NoteConnection,
	fetch driven.TextFetcher,
) (domain.ConceptRelations, error) {
	relations := make(domain.ConceptRelations, len(concepts))
	if len(concepts) == 0 {
		return relations, nil
	}

	cache := make(map[string][]sentence, len(conns))
	sentencesOf := func(conn *domain.NoteConnection) ([]sentence, error) {
		if s, ok := cache[conn.ID()]; ok {
			return s, nil
		}
		text, err := fetch(ctx, conn.Note)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Debug("Relations: skipping %s: %v", conn.ID(), err)
			cache[conn.ID()] = nil
			return nil, nil
		}
		s := m.split(text)
		cache[conn.ID()] = s
		return s, nil
	}

	for _, concept := range concepts {
		related := make(map[string]struct{})
		for i := range conns {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sentences, err := sentencesOf(&conns[i])
			if err != nil {
				return nil, err
			}
			for _, s := range sentences {
				if _, ok := s.set[concept.Term]; !ok {
					continue
				}
				for _, tok := range s.tokens {
					if tok == concept.Term || m.stops.has(tok) {
						continue
					}
					related[tok] = struct{}{}
				}
			}
		}

		terms := make([]string, 0, len(related))
		for t := range related {
			terms = append(terms, t)
		}
		sort.Strings(terms)
		relations[concept.Term] = terms
	}

	return relations, nil
}

func (m *ConceptRelationMapper) split(text string) []sentence {
	raw := m.tokenizer.Sentences(text)
	out := make([]sentence, 0, len(raw))
	for _, s := range raw {
		tokens := m.tokenizer.Tokens(s)
		if len(tokens) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			set[t] = struct{}{}
		}
		out = append(out, sentence{tokens: tokens, set: set})
	}
	return out
}
