package services

import (
	"sort"
	"unicode/utf8"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

// stopList combines a tokenizer's stop-words with configured extras.
type stopList struct {
	tokenizer driven.Tokenizer
	extra     map[string]struct{}
}

func newStopList(tokenizer driven.Tokenizer, extra []string) stopList {
	set := make(map[string]struct{}, len(extra))
	for _, w := range extra {
		for _, t := range tokenizer.Tokens(w) {
			set[t] = struct{}{}
		}
	}
	return stopList{tokenizer: tokenizer, extra: set}
}

func (s stopList) has(term string) bool {
	if _, ok := s.extra[term]; ok {
		return true
	}
	return s.tokenizer.IsStopWord(term)
}

// ConceptExtractor ranks corpus terms by frequency.
type ConceptExtractor struct {
	tokenizer driven.Tokenizer
	stops     stopList
	dropStops bool
	minRunes  int
	limit     int
}

// NewConceptExtractor creates an extractor keeping policy.TopConcepts terms.
// Every token counts unless the policy opts into the length or stop-word
// filters.
func NewConceptExtractor(tokenizer driven.Tokenizer, policy domain.AnalysisPolicy) *ConceptExtractor {
	return &ConceptExtractor{
		tokenizer: tokenizer,
		stops:     newStopList(tokenizer, policy.StopWords),
		dropStops: policy.ConceptStopWords,
		minRunes:  policy.ConceptMinRunes,
		limit:     policy.TopConcepts,
	}
}

func (e *ConceptExtractor) skip(term string) bool {
	if e.minRunes > 0 && utf8.RuneCountInString(term) < e.minRunes {
		return true
	}
	return e.dropStops && e.stops.has(term)
}

// Extract returns the most frequent terms of corpus, ties kept in order of
// first occurrence. An empty corpus yields an empty list.
func (e *ConceptExtractor) Extract(corpus string) []domain.Concept {
	counts := make(map[string]int)
	var order []string
	for _, term := range e.tokenizer.Tokens(corpus) {
		if e.skip(term) {
			continue
		}
		if counts[term] == 0 {
			order = append(order, term)
		}
		counts[term]++
	}

	concepts := make([]domain.Concept, 0, len(order))
	for _, term := range order {
		concepts = append(concepts, domain.Concept{Term: term, Frequency: counts[term]})
	}
	sort.SliceStable(concepts, func(i, j int) bool {
		return concepts[i].Frequency > concepts[j].Frequency
	})

	if e.limit >= 0 && len(concepts) > e.limit {
		concepts = concepts[:e.limit]
	}
	return concepts
}
