// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: JSON, TOML or YAML configuration storage holding the
//     session credential and client settings
package file
