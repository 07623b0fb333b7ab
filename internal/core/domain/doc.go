// Package domain defines the core analysis entities for notegraph.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Note: A document in the vault with its identity and modification time
//   - NoteConnection: A note's outgoing links and incoming backlinks
//   - Graph: The undirected adjacency structure derived from connections
//   - ContentDepthAnalysis: Structural and readability metrics for one note
//   - Concept: A frequent corpus term used as a co-occurrence anchor
//   - AnalysisResults: The immutable snapshot produced by one analysis run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
