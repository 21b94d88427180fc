// Package waymark exposes project-level metadata.
package waymark

// Version is the current waymark release.
const Version = "0.1.0"
