package linters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hexsprite/lintmesh/internal/model"
)

// oxlint --format json wraps diagnostics in a single object. Each diagnostic
// locates itself through labels carrying a byte span plus a pre-computed
// line/column for the span start.
type oxlintReport struct {
	Diagnostics []oxlintDiagnostic `json:"diagnostics"`
}

type oxlintDiagnostic struct {
	Message  string        `json:"message"`
	Code     string        `json:"code"`
	Severity string        `json:"severity"`
	Filename string        `json:"filename"`
	URL      string        `json:"url"`
	Labels   []oxlintLabel `json:"labels"`
}

type oxlintLabel struct {
	Span oxlintSpan `json:"span"`
}

type oxlintSpan struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func parseOxlint(raw, root string) ([]model.Issue, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var report oxlintReport
	if err := json.Unmarshal([]byte(trimmed), &report); err != nil {
		return nil, fmt.Errorf("%w: oxlint: %v", ErrMalformedOutput, err)
	}

	var issues []model.Issue
	for _, d := range report.Diagnostics {
		// A diagnostic without a label has no position and cannot become a
		// located issue.
		if len(d.Labels) == 0 || d.Filename == "" {
			continue
		}
		span := d.Labels[0].Span

		sev := model.SeverityWarning
		if d.Severity == "error" {
			sev = model.SeverityError
		}

		line := normPos(span.Line)
		col := normPos(span.Column)

		issue := model.Issue{
			Path:      relPath(root, d.Filename),
			Line:      line,
			Column:    col,
			EndLine:   line,
			EndColumn: col + span.Length,
			Severity:  sev,
			Rule:      namespace("oxlint", d.Code),
			Message:   d.Message,
			Linter:    "oxlint",
		}
		if d.URL != "" {
			issue.RuleMeta = &model.RuleMeta{DocURL: d.URL}
		}

		issues = append(issues, issue)
	}

	if err := validateAll("oxlint", issues); err != nil {
		return nil, err
	}
	return issues, nil
}
