// Package services implements the driving port interfaces.
// Services contain the client's core logic (credential lifecycle,
// response classification, the toll command catalog) and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go and never touch the network or the filesystem
// directly, except to open upload files.
package services
