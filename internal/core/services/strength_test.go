package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

func newScorer() *StrengthScorer {
	return NewStrengthScorer(domain.DefaultAnalysisPolicy())
}

func TestScore_CycleStale(t *testing.T) {
	strength := newScorer().Score(cycleConnections(), testNow)

	for _, id := range []string{"a.md", "b.md", "c.md"} {
		assert.InDelta(t, 3.5, strength[id], 1e-9, id)
	}
}

func TestScore_IsolatedStaleIsZero(t *testing.T) {
	strength := newScorer().Score([]domain.NoteConnection{conn("alone.md", nil, nil)}, testNow)

	assert.Equal(t, 0.0, strength["alone.md"])
}

func TestScore_IsolatedFreshIsRecencyOnly(t *testing.T) {
	c := NewConnection(note("fresh.md", testNow), nil, nil)

	strength := newScorer().Score([]domain.NoteConnection{c}, testNow)

	assert.InDelta(t, 3.0, strength["fresh.md"], 1e-9)
}

func TestScore_DanglingTargetsHaveNoStrength(t *testing.T) {
	strength := newScorer().Score([]domain.NoteConnection{conn("a.md", []string{"ghost"}, nil)}, testNow)

	assert.Contains(t, strength, "a.md")
	assert.NotContains(t, strength, "ghost")
}

func TestScore_MonotonicInBacklinks(t *testing.T) {
	s := newScorer()
	var previous float64

	for n := 0; n <= 5; n++ {
		backlinks := make([]string, n)
		for i := range backlinks {
			backlinks[i] = string(rune('b'+i)) + ".md"
		}
		strength := s.Score([]domain.NoteConnection{conn("a.md", []string{"x.md"}, backlinks)}, testNow)

		assert.GreaterOrEqual(t, strength["a.md"], previous, "backlinks=%d", n)
		previous = strength["a.md"]
	}
}

func TestScore_BacklinkOutweighsLink(t *testing.T) {
	s := newScorer()

	withLink := s.Score([]domain.NoteConnection{conn("a.md", []string{"x.md"}, nil)}, testNow)
	withBacklink := s.Score([]domain.NoteConnection{conn("a.md", nil, []string{"x.md"})}, testNow)

	assert.Greater(t, withBacklink["a.md"], withLink["a.md"])
}

func TestScore_NeverNegative(t *testing.T) {
	conns := append(cycleConnections(), conn("d.md", nil, nil))

	for id, score := range newScorer().Score(conns, testNow) {
		assert.GreaterOrEqual(t, score, 0.0, id)
	}
}

func TestRecencyBonus(t *testing.T) {
	s := newScorer()

	tests := []struct {
		name     string
		modified time.Time
		want     float64
	}{
		{"now", testNow, 3},
		{"ten days", testNow.AddDate(0, 0, -10), 2},
		{"twenty nine and a half days", testNow.Add(-29*24*time.Hour - 12*time.Hour), 0.05},
		{"exactly thirty days", testNow.AddDate(0, 0, -30), 0},
		{"older than window", testNow.AddDate(0, 0, -31), 0},
		{"future", testNow.Add(48 * time.Hour), 3},
		{"unknown", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.RecencyBonus(tt.modified, testNow), 1e-9)
		})
	}
}

func TestRecencyBonus_CustomWindow(t *testing.T) {
	policy := domain.DefaultAnalysisPolicy()
	policy.RecencyWindowDays = 7
	policy.RecencyScale = 7

	bonus := NewStrengthScorer(policy).RecencyBonus(testNow, testNow)

	assert.InDelta(t, 1.0, bonus, 1e-9)
}

func TestDepthScore(t *testing.T) {
	// b and c link a; d links b and c; e links c.
	conns := []domain.NoteConnection{
		conn("a.md", nil, []string{"b.md", "c.md"}),
		conn("b.md", []string{"a.md"}, []string{"d.md"}),
		conn("c.md", []string{"a.md"}, []string{"d.md", "e.md"}),
		conn("d.md", []string{"b.md", "c.md"}, nil),
		conn("e.md", []string{"c.md"}, nil),
	}
	byID := make(map[string]*domain.NoteConnection)
	for i := range conns {
		byID[conns[i].ID()] = &conns[i]
	}
	s := newScorer()

	assert.InDelta(t, 3.0, s.DepthScore(&conns[0], byID), 1e-9)
	assert.InDelta(t, 1.0, s.DepthScore(&conns[1], byID), 1e-9)
	assert.InDelta(t, 0.0, s.DepthScore(&conns[3], byID), 1e-9)
}

func TestDepthScore_AtLeastDirectBacklinks(t *testing.T) {
	conns := append(cycleConnections(),
		conn("hub.md", nil, []string{"a.md", "b.md", "c.md"}),
	)
	byID := make(map[string]*domain.NoteConnection)
	for i := range conns {
		byID[conns[i].ID()] = &conns[i]
	}
	s := newScorer()

	for i := range conns {
		direct := make(map[string]struct{})
		for _, b := range conns[i].Backlinks {
			direct[b] = struct{}{}
		}
		assert.GreaterOrEqual(t, s.DepthScore(&conns[i], byID), float64(len(direct)), conns[i].ID())
	}
}

func TestDepthScore_CycleHasNoIndirectReach(t *testing.T) {
	conns := cycleConnections()
	byID := make(map[string]*domain.NoteConnection)
	for i := range conns {
		byID[conns[i].ID()] = &conns[i]
	}

	assert.InDelta(t, 1.0, newScorer().DepthScore(&conns[0], byID), 1e-9)
}

func TestDepthScore_SkipsNearSecondHopSources(t *testing.T) {
	tests := []struct {
		name  string
		conns []domain.NoteConnection
		want  float64
	}{
		{
			// a links t; t and s link b; b links a. t is a link target of a.
			name: "link target is second-hop source",
			conns: []domain.NoteConnection{
				conn("a.md", []string{"t.md"}, []string{"b.md"}),
				conn("b.md", []string{"a.md"}, []string{"s.md", "t.md"}),
				conn("s.md", []string{"b.md"}, nil),
				conn("t.md", []string{"b.md"}, []string{"a.md"}),
			},
			want: 1.5,
		},
		{
			name: "note itself is second-hop source",
			conns: []domain.NoteConnection{
				conn("a.md", []string{"b.md"}, []string{"b.md"}),
				conn("b.md", []string{"a.md"}, []string{"a.md"}),
			},
			want: 1.0,
		},
		{
			// c and d both link a and b links a; c also links b.
			name: "direct backlink is second-hop source",
			conns: []domain.NoteConnection{
				conn("a.md", nil, []string{"b.md", "c.md", "d.md"}),
				conn("b.md", []string{"a.md"}, []string{"c.md"}),
				conn("c.md", []string{"a.md", "b.md"}, nil),
				conn("d.md", []string{"a.md"}, nil),
			},
			want: 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byID := make(map[string]*domain.NoteConnection)
			for i := range tt.conns {
				byID[tt.conns[i].ID()] = &tt.conns[i]
			}

			assert.InDelta(t, tt.want, newScorer().DepthScore(&tt.conns[0], byID), 1e-9)
		})
	}
}
