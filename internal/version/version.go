// Package version holds the gtc CLI's build identity, overridable at
// build time via -ldflags the way the teacher's own version package is.
package version

import "github.com/fatih/color"

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = majorColor.Sprint("0") + "." + minorColor.Sprint("1") + "." + patchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash, set via -ldflags.
	GitCommit = ""

	// GitMessage is an optional git commit message, set via -ldflags.
	GitMessage = ""

	// BuildDate is an optional ISO-8601 build date, set via -ldflags.
	BuildDate = ""
)
