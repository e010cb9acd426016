// Package buildinfo holds release metadata injected at build time.
package buildinfo

// These values are set via ldflags for release binaries. They default
// to empty for local/dev builds, where VCS build info is used instead.
var (
	Version = ""
	Commit  = ""
)
