// Package settings holds build metadata, per-run options and the context
// helpers that carry them through the hris commands.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "hris"

// ConfigEnvVar names the environment variable consulted when --config is unset.
const ConfigEnvVar = "HRIS_CONFIG"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the options of a single invocation, resolved from global flags.
type Run struct {
	MinLogLevel int8
	LogFile     string
	ConfigPath  string
	Role        string // overrides the role found in page data when set
	NoColor     bool
	DryRun      bool // submit forms to the log instead of the server
}

// NewCliParams returns the defaults used before flags are parsed: info level
// logging to stderr, color on, live submissions.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		DryRun:      false,
	}
}
