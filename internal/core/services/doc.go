// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The analytics engine lives here as small, independently testable steps:
//
//   - connections.go: NoteConnection extraction, weak and isolated detection
//   - graph.go: undirected graph, degree centrality, graph export
//   - strength.go: weighted connection strength with recency and depth
//   - content.go: content depth and readability metrics
//   - concepts.go: corpus concept extraction
//   - relations.go: sentence-scoped concept co-occurrence
//   - analysis.go: the orchestrator that sequences a full run
//   - analysis_service.go: runs, single-note summaries and stored history
//   - settings.go: AppSettings over a ConfigStore
//   - watch.go: debounced re-analysis on vault changes
//
// Services are pure Go with no CGO and never import adapters.
package services
