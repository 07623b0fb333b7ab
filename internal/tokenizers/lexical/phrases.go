package lexical

import (
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

// Ensure PhraseExtractor implements the interface.
var _ driven.PhraseExtractor = (*PhraseExtractor)(nil)

// maxPhraseWords caps candidate length; longer runs are split.
const maxPhraseWords = 3

// phraseBoundary separates candidate phrases within a sentence.
var phraseBoundary = regexp.MustCompile(`[,;:()\[\]{}"|*#>_=~` + "`" + `]+|\s[-–—]\s`)

// PhraseExtractor detects key phrases with a RAKE-style scorer.
type PhraseExtractor struct {
	tokenizer *Tokenizer
}

// NewPhraseExtractor creates an extractor sharing the tokenizer's stop-words.
func NewPhraseExtractor(tokenizer *Tokenizer) *PhraseExtractor {
	if tokenizer == nil {
		tokenizer = New()
	}
	return &PhraseExtractor{tokenizer: tokenizer}
}

type candidate struct {
	words []string
	text  string
	first int
	count int
	score float64
}

// KeyPhrases returns at most limit phrases, highest score first.
// Ties are broken by phrase frequency and then by first occurrence.
func (e *PhraseExtractor) KeyPhrases(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	candidates := e.candidates(text)
	if len(candidates) == 0 {
		return nil
	}

	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, c := range candidates {
		for _, w := range c.words {
			freq[w] += c.count
			degree[w] += len(c.words) * c.count
		}
	}
	for _, c := range candidates {
		for _, w := range c.words {
			c.score += float64(degree[w]) / float64(freq[w])
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	phrases := make([]string, len(candidates))
	for i, c := range candidates {
		phrases[i] = c.text
	}
	return phrases
}

// candidates returns the distinct candidate phrases in first-seen order.
func (e *PhraseExtractor) candidates(text string) []*candidate {
	var (
		ordered []*candidate
		index   = make(map[string]*candidate)
		seq     int
	)
	add := func(words []string) {
		if len(words) == 0 {
			return
		}
		key := strings.Join(words, " ")
		if c, ok := index[key]; ok {
			c.count++
			return
		}
		c := &candidate{words: words, text: key, first: seq, count: 1}
		seq++
		index[key] = c
		ordered = append(ordered, c)
	}

	for _, sentence := range e.tokenizer.Sentences(text) {
		for _, fragment := range phraseBoundary.Split(sentence, -1) {
			var run []string
			for _, tok := range e.tokenizer.Tokens(fragment) {
				if !e.isContentWord(tok) {
					addChunks(run, add)
					run = nil
					continue
				}
				run = append(run, tok)
			}
			addChunks(run, add)
		}
	}
	return ordered
}

func (e *PhraseExtractor) isContentWord(tok string) bool {
	if len([]rune(tok)) < 2 || e.tokenizer.IsStopWord(tok) {
		return false
	}
	return !isNumeric(tok)
}

func addChunks(run []string, add func([]string)) {
	for len(run) > maxPhraseWords {
		add(run[:maxPhraseWords])
		run = run[maxPhraseWords:]
	}
	add(run)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
