// Package version exposes the build version of the binary.
package version

// Version is set at build time via ldflags.
var Version = "dev"

// GetVersion returns the current build version.
func GetVersion() string {
	return Version
}
