package version

import "fmt"

// Set via ldflags during release builds.
var (
	Version = "0.4.0"
	Commit  = "none"
)

// Short returns the bare version string.
func Short() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Full returns the version with the commit it was built from.
func Full() string {
	return fmt.Sprintf("%s (%s)", Short(), Commit)
}
