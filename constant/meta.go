// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Vidplay is the canonical application identifier used for filesystem paths and CLI branding.
	Vidplay = "vidplay"

	// Version is the current application semantic version string.
	Version = "0.3.1"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
