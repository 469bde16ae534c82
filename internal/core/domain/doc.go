// Package domain defines the core entities for gemctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ResourcePath: A parsed projects/.../collections/... resource name
//   - Engine: A search engine (app) over data stores
//   - DataStore: A document store with its schema and processing config
//   - Operation: A long-running operation handle
//   - Document: An indexed document in a data store branch
//   - Config: The resolved settings of one CLI invocation
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
