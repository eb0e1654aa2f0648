package version

import "github.com/fatih/color"

// Version information for the oracle CLI.
// These variables can be overridden at build time via -ldflags.

const (
	versionMajor = "0"
	versionMinor = "1"
	versionPatch = "0"
	versionPre   = "-dev"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint(versionMajor) + "." + versionMinorColor.Sprint(versionMinor) + "." + versionPatchColor.Sprint(versionPatch) + versionPre

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the version without terminal colors, for protocol
// handshakes and logs.
func Plain() string {
	return versionMajor + "." + versionMinor + "." + versionPatch + versionPre
}
