package domain

import "sort"

// Graph is an undirected adjacency structure keyed by note identifier.
// An edge recorded from A to B is always mirrored from B to A.
type Graph map[string]map[string]struct{}

// AddNode ensures id is present in the graph.
func (g Graph) AddNode(id string) {
	if _, ok := g[id]; !ok {
		g[id] = make(map[string]struct{})
	}
}

// AddEdge records a symmetric edge between a and b.
func (g Graph) AddEdge(a, b string) {
	g.AddNode(a)
	g.AddNode(b)
	g[a][b] = struct{}{}
	g[b][a] = struct{}{}
}

// HasEdge reports whether a and b are neighbours.
func (g Graph) HasEdge(a, b string) bool {
	_, ok := g[a][b]
	return ok
}

// Neighbors returns the sorted neighbour identifiers of id.
func (g Graph) Neighbors(id string) []string {
	return sortedSet(g[id])
}

// Nodes returns every node identifier in sorted order.
func (g Graph) Nodes() []string {
	nodes := make([]string, 0, len(g))
	for id := range g {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// EdgeCount returns the number of undirected edges.
// A self-link counts once.
func (g Graph) EdgeCount() int {
	count := 0
	for id, neighbors := range g {
		for n := range neighbors {
			if id <= n {
				count++
			}
		}
	}
	return count
}

// CentralityMap maps a note identifier to its neighbour count.
type CentralityMap map[string]int

// StrengthMap maps a note identifier to its weighted connection strength.
type StrengthMap map[string]float64

// RankedNote is one entry of a score ranking.
type RankedNote struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// GraphData is a render-ready export of the link graph.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// GraphNode is a node of the exported graph.
type GraphNode struct {
	ID          string  `json:"id"`
	Group       int     `json:"group"`
	Strength    float64 `json:"strength"`
	Connections int     `json:"connections"`
}

// GraphLink is a directed link of the exported graph.
// Value is the number of times the source links the target.
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
