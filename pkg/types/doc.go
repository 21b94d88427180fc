// Package types defines the core entities of the waymark track tracker:
// tracks, dependency edges, derived views, and the errors shared across
// the storage and engine layers.
package types
