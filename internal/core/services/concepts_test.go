package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/tokenizers/lexical"
)

func newConceptExtractor(policy domain.AnalysisPolicy) *ConceptExtractor {
	return NewConceptExtractor(lexical.New(), policy)
}

func TestExtract_EmptyCorpus(t *testing.T) {
	concepts := newConceptExtractor(domain.DefaultAnalysisPolicy()).Extract("")

	assert.NotNil(t, concepts)
	assert.Empty(t, concepts)
}

func TestExtract_SingleRepeatedWord(t *testing.T) {
	concepts := newConceptExtractor(domain.DefaultAnalysisPolicy()).Extract("graph Graph GRAPH graph.")

	assert.Equal(t, []domain.Concept{{Term: "graph", Frequency: 4}}, concepts)
}

func TestExtract_TiesKeepFirstOccurrence(t *testing.T) {
	concepts := newConceptExtractor(domain.DefaultAnalysisPolicy()).Extract("zeta alpha zeta alpha beta")

	assert.Equal(t, []domain.Concept{
		{Term: "zeta", Frequency: 2},
		{Term: "alpha", Frequency: 2},
		{Term: "beta", Frequency: 1},
	}, concepts)
}

func TestExtract_RepeatedShortOrStopWord(t *testing.T) {
	tests := []struct {
		corpus string
		want   domain.Concept
	}{
		{"the the the", domain.Concept{Term: "the", Frequency: 3}},
		{"a a a", domain.Concept{Term: "a", Frequency: 3}},
		{"x X x x", domain.Concept{Term: "x", Frequency: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.corpus, func(t *testing.T) {
			concepts := newConceptExtractor(domain.DefaultAnalysisPolicy()).Extract(tt.corpus)

			assert.Equal(t, []domain.Concept{tt.want}, concepts)
		})
	}
}

func TestExtract_DefaultKeepsStopWords(t *testing.T) {
	policy := domain.DefaultAnalysisPolicy()
	policy.StopWords = []string{"graph"}

	concepts := newConceptExtractor(policy).Extract("graph graph node")

	assert.Equal(t, []domain.Concept{
		{Term: "graph", Frequency: 2},
		{Term: "node", Frequency: 1},
	}, concepts)
}

func TestExtract_SkipsStopWordsAndSingleRunes(t *testing.T) {
	policy := domain.DefaultAnalysisPolicy()
	policy.ConceptMinRunes = 2
	policy.ConceptStopWords = true

	concepts := newConceptExtractor(policy).Extract("The the a x graph of the x")

	assert.Equal(t, []domain.Concept{{Term: "graph", Frequency: 1}}, concepts)
}

func TestExtract_PolicyStopWords(t *testing.T) {
	policy := domain.DefaultAnalysisPolicy()
	policy.ConceptStopWords = true
	policy.StopWords = []string{"Graph"}

	concepts := newConceptExtractor(policy).Extract("graph graph node")

	assert.Equal(t, []domain.Concept{{Term: "node", Frequency: 1}}, concepts)
}

func TestExtract_KeepsTopN(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		for j := 0; j <= i; j++ {
			fmt.Fprintf(&b, "term%02d ", i)
		}
	}

	concepts := newConceptExtractor(domain.DefaultAnalysisPolicy()).Extract(b.String())

	require.Len(t, concepts, 20)
	assert.Equal(t, domain.Concept{Term: "term24", Frequency: 25}, concepts[0])
	assert.Equal(t, domain.Concept{Term: "term05", Frequency: 6}, concepts[19])
}

func TestExtract_SortedByFrequency(t *testing.T) {
	concepts := newConceptExtractor(domain.DefaultAnalysisPolicy()).Extract("one two two three three three")

	for i := 1; i < len(concepts); i++ {
		assert.GreaterOrEqual(t, concepts[i-1].Frequency, concepts[i].Frequency)
	}
}
