package driven

// Tokenizer splits text into terms.
// Implementations must be deterministic and fold case without depending on
// the process locale.
type Tokenizer interface {
	// Tokens returns the case-folded alphanumeric terms of text in order.
	Tokens(text string) []string

	// Sentences splits text into sentence-like segments.
	Sentences(text string) []string

	// IsStopWord reports whether a case-folded term carries no topic.
	IsStopWord(term string) bool
}

// PhraseExtractor detects topic-like spans in a single document.
type PhraseExtractor interface {
	// KeyPhrases returns at most limit phrases ordered by relevance.
	KeyPhrases(text string, limit int) []string
}
