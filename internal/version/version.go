// Package version holds the build information of the rotor binary.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/wzhd/rotor/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/wzhd/rotor/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/wzhd/rotor/internal/version.Date={{.Date}}
)

// String formats the build information for `rotor version`
func String() string {
	return fmt.Sprintf("rotor version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
