// Package domain defines the core business entities for IdeaLens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: A discovered repository with its optional AI summary
//   - Cursor: Pagination position and the "more available" heuristic
//   - SearchState: A snapshot of the search controller's view state
//   - ChatMessage: One entry in the append-only chat transcript
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
