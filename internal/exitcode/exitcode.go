package exitcode

import "github.com/hexsprite/lintmesh/internal/model"

// Process exit statuses. These are wire contract: CI pipelines branch on
// them.
const (
	Clean       = 0
	IssuesFound = 1
	ToolError   = 2
)

// FromReport maps an aggregated report plus a severity threshold to the
// process exit status. Every attempted tool failing is a tool error and wins
// over issue content; otherwise any issue at or above the threshold means
// issues were found.
func FromReport(rep *model.Report, threshold model.Severity, allFailed bool) int {
	if allFailed {
		return ToolError
	}
	for _, is := range rep.Issues {
		if model.SeverityGTE(is.Severity, threshold) {
			return IssuesFound
		}
	}
	return Clean
}
