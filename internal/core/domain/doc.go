// Package domain defines the core business entities for Vilabot.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceDefinition: A declaratively configured event provider
//   - Intent: The structured interpretation of a user query
//   - RawEventRecord: An as-scraped event before normalisation
//   - Event: The canonical cross-source event schema
//   - QueryResult: The outcome of one query pipeline run
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
