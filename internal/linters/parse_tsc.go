package linters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hexsprite/lintmesh/internal/model"
)

// tsc has no machine-readable reporter; diagnostics arrive as lines of the
// form
//
//	src/a.ts(10,5): error TS2322: Type 'string' is not assignable ...
//
// with indented continuation lines elaborating the message. The greedy path
// group makes the trailing (line,col) pair win when the path itself contains
// parentheses.
var tscHeader = regexp.MustCompile(`^(.+)\((\d+),(\d+)\): (error|warning) (TS\d+): (.*)$`)

// parseTypeScript scans stdout and stderr combined. Unlike the structured
// parsers, non-empty input with no recognizable diagnostics is treated as
// clean output, not as a malformed-output failure: this format gives no way
// to tell "no issues" apart from text we do not understand.
func parseTypeScript(raw, root string) ([]model.Issue, error) {
	var issues []model.Issue
	var cur *model.Issue

	flush := func() {
		if cur != nil {
			issues = append(issues, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := tscHeader.FindStringSubmatch(line); m != nil {
			flush()
			ln, _ := strconv.Atoi(m[2])
			col, _ := strconv.Atoi(m[3])
			sev := model.SeverityWarning
			if m[4] == "error" {
				sev = model.SeverityError
			}
			cur = &model.Issue{
				Path:      relPath(root, m[1]),
				Line:      normPos(ln),
				Column:    normPos(col),
				EndLine:   normPos(ln),
				EndColumn: normPos(col),
				Severity:  sev,
				Rule:      namespace("tsc", m[5]),
				Message:   m[6],
				Linter:    "tsc",
			}
			continue
		}

		// Indented lines extend the open diagnostic's message.
		if cur != nil && line != "" && (line[0] == ' ' || line[0] == '\t') {
			cur.Message += "\n" + strings.TrimSpace(line)
			continue
		}

		flush()
	}
	flush()

	if err := validateAll("tsc", issues); err != nil {
		return nil, err
	}
	return issues, nil
}
