// Package domain defines the core business entities for newsum.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A news article as returned by a news source
//   - Chunk: An embeddable unit of an article body
//   - UserPreferences: Saved topics and summary preferences
//   - SearchHistoryEntry: One recorded news search
//   - AppSettings: Provider and pipeline configuration
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
