// Package domain defines the core business entities for Quaero.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A loaded source document with metadata
//   - Chunk: An overlapping window of document text, the retrieval unit
//   - IndexEntry: The persisted (id, vector, text, metadata) tuple
//   - SearchResult: A retrieved chunk ranked by vector distance
//   - Report: A parsed per-country weather report
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
