// Package domain defines the core types of the se2460 toll client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Request: a transient description of one HTTP call
//   - Response: the raw status and body returned by the toll API
//   - Outcome: the single classified result of a call
//   - ClientSettings: base URL, auth header and TLS policy
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
