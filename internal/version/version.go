package version

import "github.com/fatih/color"

// Version information for the brilcfg CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	restColor  = color.New(color.FgGreen)
)

// Colored returns Version with the major component highlighted.
func Colored() string {
	for i := 0; i < len(Version); i++ {
		if Version[i] == '.' {
			return majorColor.Sprint(Version[:i]) + restColor.Sprint(Version[i:])
		}
	}
	return majorColor.Sprint(Version)
}
