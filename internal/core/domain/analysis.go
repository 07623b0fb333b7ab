package domain

import (
	"errors"
	"fmt"
	"time"
)

// DocumentFailure records a note whose content could not be analysed.
type DocumentFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// AnalysisResults is the snapshot produced by one analysis run.
// It is read-only once returned and is replaced wholesale by the next run.
type AnalysisResults struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId"`

	// VaultPath is the analysed vault root, if known.
	VaultPath string `json:"vaultPath,omitempty"`

	// StartedAt is the instant used as "now" for every recency calculation.
	StartedAt time.Time `json:"startedAt"`

	// Duration is the wall time the run took.
	Duration time.Duration `json:"duration"`

	Connections     []NoteConnection       `json:"connections"`
	Graph           Graph                  `json:"graph"`
	Centrality      CentralityMap          `json:"centrality"`
	Strength        StrengthMap            `json:"strength"`
	WeakConnections []string               `json:"weakConnections"`
	IsolatedNotes   []string               `json:"isolatedNotes"`
	TopStrength     []RankedNote           `json:"topStrength"`
	TopCentrality   []RankedNote           `json:"topCentrality"`
	ContentDepth    []ContentDepthAnalysis `json:"contentDepth"`
	Concepts        []Concept              `json:"concepts"`
	Relations       ConceptRelations       `json:"relations"`

	// Failures lists notes whose content analysis was skipped.
	Failures []DocumentFailure `json:"failures,omitempty"`

	// Partial is true when at least one note failed content analysis.
	Partial bool `json:"partial"`
}

// NoteCount returns the number of analysed notes.
func (r *AnalysisResults) NoteCount() int {
	return len(r.Connections)
}

// Connection returns the connection for path.
func (r *AnalysisResults) Connection(path string) (NoteConnection, bool) {
	for i := range r.Connections {
		if r.Connections[i].ID() == path {
			return r.Connections[i], true
		}
	}
	return NoteConnection{}, false
}

// Depth returns the content analysis for path, if it succeeded.
func (r *AnalysisResults) Depth(path string) (ContentDepthAnalysis, bool) {
	for i := range r.ContentDepth {
		if r.ContentDepth[i].Path == path {
			return r.ContentDepth[i], true
		}
	}
	return ContentDepthAnalysis{}, false
}

// Err joins the per-note failures into one error, or returns nil.
func (r *AnalysisResults) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w: %s", f.Path, ErrTextUnavailable, f.Reason))
	}
	return errors.Join(errs...)
}

// Summary returns the one-line result message of the run.
func (r *AnalysisResults) Summary() string {
	return fmt.Sprintf("Analysis complete. Total notes: %d, Weak connections: %d, Isolated notes: %d",
		r.NoteCount(), len(r.WeakConnections), len(r.IsolatedNotes))
}

// RunSummary is the stored header of a past run.
type RunSummary struct {
	RunID     string
	VaultPath string
	StartedAt time.Time
	Duration  time.Duration
	NoteCount int
	Weak      int
	Isolated  int
	Partial   bool
}

// SummaryOf builds the stored header for results.
func SummaryOf(r *AnalysisResults) RunSummary {
	return RunSummary{
		RunID:     r.RunID,
		VaultPath: r.VaultPath,
		StartedAt: r.StartedAt,
		Duration:  r.Duration,
		NoteCount: r.NoteCount(),
		Weak:      len(r.WeakConnections),
		Isolated:  len(r.IsolatedNotes),
		Partial:   r.Partial,
	}
}
