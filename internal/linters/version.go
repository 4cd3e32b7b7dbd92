package linters

import (
	"regexp"
	"strings"
)

const (
	VersionUnknown  = "unknown"
	VersionNotFound = "not found"
)

var semverRE = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`)

// extractVersion pulls a semver-shaped substring out of a tool's version
// output ("Version 5.6.3", "v9.14.0", "oxlint 0.15.3"). Output with no such
// substring is returned trimmed as-is.
func extractVersion(out string) string {
	out = strings.TrimSpace(out)
	if out == "" {
		return VersionUnknown
	}
	if m := semverRE.FindString(out); m != "" {
		return m
	}
	return out
}
