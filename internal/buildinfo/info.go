// Package buildinfo carries the version identifiers stamped in at
// build time via -ldflags.
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
