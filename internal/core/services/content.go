package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/notegraph/internal/core/domain"
	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

var (
	citationPattern  = regexp.MustCompile(`\[\[.*?\]\]`)
	headingPattern   = regexp.MustCompile(`(?m)^(#{1,6})(?:[ \t]|$)`)
	codeBlockPattern = regexp.MustCompile("(?s)```.*?```")
	formulaPattern   = regexp.MustCompile(`(?s)\$\$.*?\$\$`)
	sentenceEnd      = regexp.MustCompile(`[.!?]+`)
	vowelGroup       = regexp.MustCompile(`[aeiouy]+`)
)

// ContentAnalyzer computes per-note text metrics.
// It is safe for concurrent use when its tokenizer and phrase extractor are.
type ContentAnalyzer struct {
	tokenizer  driven.Tokenizer
	phrases    driven.PhraseExtractor
	weights    domain.ContentWeights
	keyPhrases int
}

// NewContentAnalyzer creates an analyzer using the policy's weights and
// key phrase limit. A nil phrase extractor yields no key phrases.
func NewContentAnalyzer(
	tokenizer driven.Tokenizer,
	phrases driven.PhraseExtractor,
	policy domain.AnalysisPolicy,
) *ContentAnalyzer {
	return &ContentAnalyzer{
		tokenizer:  tokenizer,
		phrases:    phrases,
		weights:    policy.Weights,
		keyPhrases: policy.KeyPhrases,
	}
}

// Analyze computes the depth analysis of one note's raw text.
func (a *ContentAnalyzer) Analyze(path, text string) domain.ContentDepthAnalysis {
	tokens := a.tokenizer.Tokens(text)

	analysis := domain.ContentDepthAnalysis{
		Path:             path,
		WordCount:        len(strings.Fields(text)),
		CitationCount:    len(citationPattern.FindAllStringIndex(text, -1)),
		HeadingLevels:    HeadingLevels(text),
		CodeBlockCount:   len(codeBlockPattern.FindAllStringIndex(text, -1)),
		FormulaCount:     len(formulaPattern.FindAllStringIndex(text, -1)),
		KeyPhrases:       []string{},
		ReadabilityScore: readability(text, tokens),
		UniqueWordsCount: uniqueCount(tokens),
	}
	if a.phrases != nil && a.keyPhrases > 0 {
		if phrases := a.phrases.KeyPhrases(text, a.keyPhrases); phrases != nil {
			analysis.KeyPhrases = phrases
		}
	}
	analysis.OverallScore = a.OverallScore(analysis)

	return analysis
}

// OverallScore is the weighted sum of the raw metrics divided by their
// count.
func (a *ContentAnalyzer) OverallScore(c domain.ContentDepthAnalysis) float64 {
	w := a.weights
	sum := w.Words*float64(c.WordCount) +
		w.Citations*float64(c.CitationCount) +
		w.Headings*float64(c.HeadingLevels) +
		w.CodeBlocks*float64(c.CodeBlockCount) +
		w.Formulas*float64(c.FormulaCount) +
		w.Readability*c.ReadabilityScore +
		w.UniqueWords*float64(c.UniqueWordsCount)
	return sum / domain.MetricCount
}

// HeadingLevels returns the deepest Markdown heading level in text, or 0
// when there are no headings.
func HeadingLevels(text string) int {
	deepest := 0
	for _, m := range headingPattern.FindAllStringSubmatch(text, -1) {
		if n := len(m[1]); n > deepest {
			deepest = n
		}
	}
	return deepest
}

// Readability estimates Flesch Reading Ease for text. Words are the
// tokenizer's alphanumeric terms and syllables are vowel groups, so the
// value is a heuristic. Empty input scores as one word in one sentence.
func (a *ContentAnalyzer) Readability(text string) float64 {
	return readability(text, a.tokenizer.Tokens(text))
}

func readability(text string, words []string) float64 {
	sentences := 0
	for _, s := range sentenceEnd.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	sentences = max(sentences, 1)

	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}
	wordCount := max(len(words), 1)
	if len(words) == 0 {
		syllables = 1
	}

	return 206.835 -
		1.015*(float64(wordCount)/float64(sentences)) -
		84.6*(float64(syllables)/float64(wordCount))
}

// Syllables estimates the syllable count of a word as its number of vowel
// groups, at least 1.
func Syllables(word string) int {
	return max(1, len(vowelGroup.FindAllStringIndex(strings.ToLower(word), -1)))
}

func uniqueCount(tokens []string) int {
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		seen[t] = struct{}{}
	}
	return len(seen)
}
