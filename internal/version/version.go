package version

import "fmt"

// Version is the release version embedded in the binary.
// It can be overridden at build time via:
// go build -ldflags "-X github.com/oukeidos/watchly-config/internal/version.Version=1.2.0"
var Version = "1.2.0"

// Commit can be overridden at build time via -ldflags "-X .../version.Commit=abcdef1".
var Commit = "unknown"

// BuildDate is an RFC3339 timestamp set at build time.
var BuildDate = "unknown"

// Info returns a multi-line version string for CLI output.
func Info() string {
	return fmt.Sprintf("watchly %s\ncommit: %s\nbuild: %s", Version, Commit, BuildDate)
}
