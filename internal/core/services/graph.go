package services

import (
	"sort"

	"github.com/custodia-labs/notegraph/internal/core/domain"
)

// BuildGraph builds the undirected link graph.
// Every link target and backlink source becomes a node, even when it has no
// connection record of its own. The result does not depend on the order of
// conns.
func BuildGraph(conns []domain.NoteConnection) domain.Graph {
	g := make(domain.Graph, len(conns))
	for i := range conns {
		id := conns[i].ID()
		g.AddNode(id)
		for _, target := range conns[i].Links {
			g.AddEdge(id, target)
		}
		for _, source := range conns[i].Backlinks {
			g.AddEdge(source, id)
		}
	}
	return g
}

// Centrality returns the degree centrality (neighbour count) of every node.
func Centrality(g domain.Graph) domain.CentralityMap {
	centrality := make(domain.CentralityMap, len(g))
	for id, neighbors := range g {
		centrality[id] = len(neighbors)
	}
	return centrality
}

// Components assigns each node a connected-component index.
// Components are numbered in order of their smallest node identifier.
func Components(g domain.Graph) map[string]int {
	groups := make(map[string]int, len(g))
	next := 0
	for _, start := range g.Nodes() {
		if _, seen := groups[start]; seen {
			continue
		}
		queue := []string{start}
		groups[start] = next
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			for neighbor := range g[node] {
				if _, seen := groups[neighbor]; !seen {
					groups[neighbor] = next
					queue = append(queue, neighbor)
				}
			}
		}
		next++
	}
	return groups
}

// ExportGraph converts a run's graph into render-ready nodes and links.
// Nodes are sorted by identifier. Links follow connection order and carry
// the number of times the source links the target.
func ExportGraph(
	conns []domain.NoteConnection,
	g domain.Graph,
	strength domain.StrengthMap,
	centrality domain.CentralityMap,
) domain.GraphData {
	groups := Components(g)

	data := domain.GraphData{
		Nodes: make([]domain.GraphNode, 0, len(g)),
		Links: make([]domain.GraphLink, 0),
	}
	for _, id := range g.Nodes() {
		data.Nodes = append(data.Nodes, domain.GraphNode{
			ID:          id,
			Group:       groups[id],
			Strength:    strength[id],
			Connections: centrality[id],
		})
	}

	for i := range conns {
		var order []string
		counts := make(map[string]int)
		for _, target := range conns[i].Links {
			if counts[target] == 0 {
				order = append(order, target)
			}
			counts[target]++
		}
		for _, target := range order {
			data.Links = append(data.Links, domain.GraphLink{
				Source: conns[i].ID(),
				Target: target,
				Value:  counts[target],
			})
		}
	}

	return data
}

// TopStrength ranks notes by strength, highest first.
// Ties are broken by identifier.
func TopStrength(strength domain.StrengthMap, n int) []domain.RankedNote {
	ranked := make([]domain.RankedNote, 0, len(strength))
	for id, score := range strength {
		ranked = append(ranked, domain.RankedNote{Path: id, Score: score})
	}
	return topN(ranked, n)
}

// TopCentrality ranks nodes by centrality, highest first.
// Ties are broken by identifier.
func TopCentrality(centrality domain.CentralityMap, n int) []domain.RankedNote {
	ranked := make([]domain.RankedNote, 0, len(centrality))
	for id, degree := range centrality {
		ranked = append(ranked, domain.RankedNote{Path: id, Score: float64(degree)})
	}
	return topN(ranked, n)
}

func topN(ranked []domain.RankedNote, n int) []domain.RankedNote {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Path < ranked[j].Path
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
