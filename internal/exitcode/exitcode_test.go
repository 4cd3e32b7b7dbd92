package exitcode

import (
	"testing"

	"github.com/hexsprite/lintmesh/internal/model"
)

func reportWith(sevs ...model.Severity) *model.Report {
	r := &model.Report{}
	for _, s := range sevs {
		r.Issues = append(r.Issues, model.Issue{Severity: s})
	}
	return r
}

func TestFromReport(t *testing.T) {
	tests := []struct {
		name      string
		report    *model.Report
		threshold model.Severity
		allFailed bool
		want      int
	}{
		{"clean report", reportWith(), model.SeverityError, false, Clean},
		{"error at error threshold", reportWith(model.SeverityError), model.SeverityError, false, IssuesFound},
		{"warnings alone never trip error threshold", reportWith(model.SeverityWarning, model.SeverityWarning), model.SeverityError, false, Clean},
		{"info alone never trips warning threshold", reportWith(model.SeverityInfo), model.SeverityWarning, false, Clean},
		{"warning trips warning threshold", reportWith(model.SeverityWarning), model.SeverityWarning, false, IssuesFound},
		{"error trips warning threshold by rank", reportWith(model.SeverityError), model.SeverityWarning, false, IssuesFound},
		{"any issue trips info threshold", reportWith(model.SeverityInfo), model.SeverityInfo, false, IssuesFound},
		{"all tools failed wins over clean content", reportWith(), model.SeverityError, true, ToolError},
		{"all tools failed wins over issue content", reportWith(model.SeverityError), model.SeverityError, true, ToolError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromReport(tt.report, tt.threshold, tt.allFailed)
			if got != tt.want {
				t.Errorf("FromReport() = %d, want %d", got, tt.want)
			}
		})
	}
}
