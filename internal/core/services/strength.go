package services

import (
	"math"
	"time"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

const millisPerDay = 86_400_000

// StrengthScorer computes weighted connection strength.
type StrengthScorer struct {
	policy domain.AnalysisPolicy
}

// NewStrengthScorer creates a scorer for the given policy.
func NewStrengthScorer(policy domain.AnalysisPolicy) *StrengthScorer {
	return &StrengthScorer{policy: policy}
}

// Score returns the strength of every connection.
// now must be the single instant captured for the whole run.
func (s *StrengthScorer) Score(conns []domain.NoteConnection, now time.Time) domain.StrengthMap {
	byID := make(map[string]*domain.NoteConnection, len(conns))
	for i := range conns {
		byID[conns[i].ID()] = &conns[i]
	}

	strength := make(domain.StrengthMap, len(conns))
	for i := range conns {
		conn := &conns[i]
		score := float64(len(conn.Links))*s.policy.LinkWeight +
			float64(len(conn.Backlinks))*s.policy.BacklinkWeight +
			s.RecencyBonus(conn.LastModified, now) +
			s.DepthScore(conn, byID)
		strength[conn.ID()] = math.Max(0, score)
	}
	return strength
}

// RecencyBonus rewards notes edited within the recency window.
// A zero modification time earns nothing. Future times count as now.
func (s *StrengthScorer) RecencyBonus(lastModified, now time.Time) float64 {
	if lastModified.IsZero() || s.policy.RecencyScale <= 0 {
		return 0
	}

	days := float64(now.Sub(lastModified).Milliseconds()) / millisPerDay
	if days < 0 {
		days = 0
	}
	if days > s.policy.RecencyWindowDays {
		return 0
	}
	return (s.policy.RecencyWindowDays - days) / s.policy.RecencyScale
}

// DepthScore is the number of direct backlinks plus a weighted count of
// second-hop backlinks. Second-hop sources already one hop away (direct
// backlinks, the note itself and its link targets) are not counted again.
func (s *StrengthScorer) DepthScore(conn *domain.NoteConnection, byID map[string]*domain.NoteConnection) float64 {
	direct := make(map[string]struct{}, len(conn.Backlinks))
	for _, b := range conn.Backlinks {
		direct[b] = struct{}{}
	}

	near := make(map[string]struct{}, len(direct)+len(conn.Links)+1)
	for b := range direct {
		near[b] = struct{}{}
	}
	for _, l := range conn.Links {
		near[l] = struct{}{}
	}
	near[conn.ID()] = struct{}{}

	indirect := make(map[string]struct{})
	for b := range direct {
		source, ok := byID[b]
		if !ok {
			continue
		}
		for _, bb := range source.Backlinks {
			if _, skip := near[bb]; !skip {
				indirect[bb] = struct{}{}
			}
		}
	}

	return float64(len(direct)) + s.policy.IndirectWeight*float64(len(indirect))
}
