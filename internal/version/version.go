// Package version holds the kindsort build version.
package version

// Overridable at build time:
// go build -ldflags "-X kindsort/internal/version.Version=1.0.0 -X kindsort/internal/version.Commit=abc123"
var (
	// Version is the semantic version of kindsort
	Version = "0.1.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Tool is the name reported in findings reports and SARIF output.
const Tool = "kindsort"

// Info returns the version with a short commit suffix when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	return Tool + " version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
