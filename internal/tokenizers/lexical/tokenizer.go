package lexical

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/notegraph/internal/core/ports/driven"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// sentenceBoundary splits on terminal punctuation and blank lines.
var sentenceBoundary = regexp.MustCompile(`[.!?]+|\n[ \t]*\n`)

// Tokenizer is the default lexical tokenizer.
// It is safe for concurrent use.
type Tokenizer struct {
	stopWords map[string]struct{}
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStopWords adds stop-words to the default list.
func WithStopWords(words ...string) Option {
	return func(t *Tokenizer) {
		for _, w := range words {
			w = fold(strings.TrimSpace(w))
			if w != "" {
				t.stopWords[w] = struct{}{}
			}
		}
	}
}

// WithoutDefaultStopWords starts from an empty stop-word list.
func WithoutDefaultStopWords() Option {
	return func(t *Tokenizer) {
		t.stopWords = make(map[string]struct{})
	}
}

// New creates a tokenizer with the default English stop-words.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{stopWords: defaultStopWords()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokens returns the case-folded alphanumeric terms of text in order.
func (t *Tokenizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range fold(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case isApostrophe(r) && current.Len() > 0:
			// Joined into the surrounding word.
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// Sentences splits text on terminal punctuation and blank lines.
// Empty segments are dropped.
func (t *Tokenizer) Sentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// IsStopWord reports whether the case-folded term is a stop-word.
func (t *Tokenizer) IsStopWord(term string) bool {
	_, ok := t.stopWords[term]
	return ok
}

// StopWordCount returns the size of the stop-word list.
func (t *Tokenizer) StopWordCount() int {
	return len(t.stopWords)
}

func fold(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(s)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
