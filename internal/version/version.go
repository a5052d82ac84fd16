// Package version exposes build information injected at link time.
package version

// These variables are overridden with -ldflags "-X" during release builds.
//
//nolint:gochecknoglobals // Link-time injection requires package-level variables.
var (
	// Version is the semantic version of the application.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns the version number only.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
