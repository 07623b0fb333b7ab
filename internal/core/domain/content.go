package domain

// ContentDepthAnalysis holds the text metrics computed for one note.
type ContentDepthAnalysis struct {
	// Path identifies the analysed note.
	Path string `json:"path"`

	// WordCount is the number of whitespace-delimited tokens.
	WordCount int `json:"wordCount"`

	// CitationCount is the number of [[...]] references.
	CitationCount int `json:"citationCount"`

	// HeadingLevels is the deepest heading level used, 0 without headings.
	HeadingLevels int `json:"headingLevels"`

	// CodeBlockCount is the number of fenced code blocks.
	CodeBlockCount int `json:"codeBlockCount"`

	// FormulaCount is the number of $$...$$ formula blocks.
	FormulaCount int `json:"formulaCount"`

	// KeyPhrases are topic-like spans extracted from the note.
	KeyPhrases []string `json:"keyPhrases"`

	// ReadabilityScore is a Flesch Reading Ease estimate. It can be negative.
	ReadabilityScore float64 `json:"readabilityScore"`

	// UniqueWordsCount is the number of distinct case-folded tokens.
	UniqueWordsCount int `json:"uniqueWordsCount"`

	// OverallScore is the weighted composite of the raw metrics.
	OverallScore float64 `json:"overallScore"`
}

// Concept is a frequent corpus term.
type Concept struct {
	Term      string `json:"term"`
	Frequency int    `json:"frequency"`
}

// ConceptRelations maps a concept term to the sorted terms that co-occur
// with it in at least one sentence.
type ConceptRelations map[string][]string
