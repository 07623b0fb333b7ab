package domain

import (
	"fmt"
	"time"
)

// ContentWeights is the weight vector of the overall content-depth score.
// The composite is the weighted sum of the seven raw metrics divided by the
// number of metrics.
type ContentWeights struct {
	Words       float64
	Citations   float64
	Headings    float64
	CodeBlocks  float64
	Formulas    float64
	Readability float64
	UniqueWords float64
}

// MetricCount is the number of raw metrics in the composite score.
const MetricCount = 7

// DefaultContentWeights returns the standard weight vector.
func DefaultContentWeights() ContentWeights {
	return ContentWeights{
		Words:       0.01,
		Citations:   2,
		Headings:    1,
		CodeBlocks:  1.5,
		Formulas:    1.5,
		Readability: 0.05,
		UniqueWords: 0.02,
	}
}

// AnalysisPolicy holds the tunable constants of an analysis run.
type AnalysisPolicy struct {
	// WeakThreshold is the degree below which a note is weakly connected.
	WeakThreshold int

	// TopConcepts is the number of concepts kept from the corpus.
	TopConcepts int

	// TopRankings is the length of the strength and centrality rankings.
	TopRankings int

	// KeyPhrases is the number of key phrases kept per note.
	KeyPhrases int

	// LinkWeight is the strength contributed by each outgoing link.
	LinkWeight float64

	// BacklinkWeight is the strength contributed by each backlink.
	BacklinkWeight float64

	// IndirectWeight scales the two-hop backlink reach.
	IndirectWeight float64

	// RecencyWindowDays is how long an edit keeps earning a recency bonus.
	RecencyWindowDays float64

	// RecencyScale divides the remaining window days into the bonus.
	RecencyScale float64

	// Workers bounds concurrent note reads. Zero means GOMAXPROCS.
	Workers int

	// StopWords are excluded from relations and key phrases in addition
	// to the tokenizer defaults. Concepts honour them only when
	// ConceptStopWords is set.
	StopWords []string

	// ConceptMinRunes drops concept terms shorter than this many runes.
	// Zero keeps every term.
	ConceptMinRunes int

	// ConceptStopWords drops stop-words from the concept ranking.
	ConceptStopWords bool

	// Weights is the content-depth weight vector.
	Weights ContentWeights
}

// DefaultAnalysisPolicy returns the standard policy.
func DefaultAnalysisPolicy() AnalysisPolicy {
	return AnalysisPolicy{
		WeakThreshold:     3,
		TopConcepts:       20,
		TopRankings:       5,
		KeyPhrases:        5,
		LinkWeight:        1.0,
		BacklinkWeight:    1.5,
		IndirectWeight:    0.5,
		RecencyWindowDays: 30,
		RecencyScale:      10,
		Workers:           0,
		Weights:           DefaultContentWeights(),
	}
}

// RecencyWindow returns the recency window as a duration.
func (p AnalysisPolicy) RecencyWindow() time.Duration {
	return time.Duration(p.RecencyWindowDays * float64(24*time.Hour))
}

// Validate checks the policy for values that would break scoring.
func (p AnalysisPolicy) Validate() error {
	switch {
	case p.WeakThreshold < 0:
		return fmt.Errorf("%w: weak threshold must not be negative", ErrInvalidInput)
	case p.TopConcepts < 0:
		return fmt.Errorf("%w: top concepts must not be negative", ErrInvalidInput)
	case p.TopRankings < 0:
		return fmt.Errorf("%w: top rankings must not be negative", ErrInvalidInput)
	case p.KeyPhrases < 0:
		return fmt.Errorf("%w: key phrases must not be negative", ErrInvalidInput)
	case p.LinkWeight < 0 || p.BacklinkWeight < 0 || p.IndirectWeight < 0:
		return fmt.Errorf("%w: strength weights must not be negative", ErrInvalidInput)
	case p.BacklinkWeight <= p.LinkWeight:
		return fmt.Errorf("%w: backlink weight must exceed link weight", ErrInvalidInput)
	case p.RecencyWindowDays < 0:
		return fmt.Errorf("%w: recency window must not be negative", ErrInvalidInput)
	case p.RecencyScale <= 0:
		return fmt.Errorf("%w: recency scale must be positive", ErrInvalidInput)
	case p.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidInput)
	case p.ConceptMinRunes < 0:
		return fmt.Errorf("%w: concept min runes must not be negative", ErrInvalidInput)
	}
	return nil
}

// VaultSettings holds the default vault location.
type VaultSettings struct {
	// Path is the vault root used when a command is given no path.
	Path string
}

// StorageSettings controls snapshot persistence.
type StorageSettings struct {
	// Enabled stores every completed run in the analysis store.
	Enabled bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Vault holds the default vault settings.
	Vault VaultSettings

	// Analysis holds the scoring policy.
	Analysis AnalysisPolicy

	// Storage holds persistence settings.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// No vault is configured by default.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Vault:    VaultSettings{},
		Analysis: DefaultAnalysisPolicy(),
		Storage:  StorageSettings{Enabled: true},
	}
}
