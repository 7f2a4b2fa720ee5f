package version

import "github.com/fatih/color"

// Build metadata for the dartforge CLI. Overridable at link time, e.g.
// -ldflags "-X dartforge/internal/version.GitCommit=$(git rev-parse HEAD)".

var (
	major = color.New(color.FgYellow, color.Bold).Sprint("0")
	minor = color.New(color.FgGreen, color.Bold).Sprint("1")
	patch = color.New(color.FgBlue, color.Bold).Sprint("0")

	// Version is the semantic version of the CLI.
	Version = major + "." + minor + "." + patch + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
