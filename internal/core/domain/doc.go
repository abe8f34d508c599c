// Package domain defines the core business entities for QuickCast.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Result: A candidate answer to a query
//   - Category: The kind of result (application, file, ...)
//   - Action: The side effect a result triggers when selected
//   - DispatchOutcome: The reported outcome of executing an action
//   - Settings: Ranking and aggregation configuration
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
