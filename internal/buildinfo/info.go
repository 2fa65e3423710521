// Package buildinfo carries version metadata stamped in at build time.
package buildinfo

var (
	// Version is overridden via ldflags on release builds.
	Version = "dev"
	// Commit is overridden via ldflags on release builds.
	Commit = "none"
	// Date is overridden via ldflags on release builds.
	Date = "unknown"
)
