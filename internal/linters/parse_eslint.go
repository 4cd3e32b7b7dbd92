package linters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hexsprite/lintmesh/internal/model"
)

// eslint --format json emits one array element per linted file, clean files
// included, with findings under "messages".
type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID      *string            `json:"ruleId"`
	Severity    int                `json:"severity"`
	Message     string             `json:"message"`
	Line        int                `json:"line"`
	Column      int                `json:"column"`
	EndLine     int                `json:"endLine"`
	EndColumn   int                `json:"endColumn"`
	Fix         *eslintFix         `json:"fix"`
	Suggestions []eslintSuggestion `json:"suggestions"`
}

type eslintFix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

type eslintSuggestion struct {
	Desc string     `json:"desc"`
	Fix  *eslintFix `json:"fix"`
}

func parseESLint(raw, root string) ([]model.Issue, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var files []eslintFile
	if err := json.Unmarshal([]byte(trimmed), &files); err != nil {
		return nil, fmt.Errorf("%w: eslint: %v", ErrMalformedOutput, err)
	}

	var issues []model.Issue
	for _, f := range files {
		if len(f.Messages) == 0 {
			continue
		}
		if f.FilePath == "" {
			return nil, fmt.Errorf("%w: eslint: file entry with messages but no filePath", ErrMalformedOutput)
		}
		path := relPath(root, f.FilePath)

		for _, m := range f.Messages {
			sev := model.SeverityWarning
			if m.Severity == 2 {
				sev = model.SeverityError
			}

			// A null ruleId means eslint could not parse the file; the
			// finding is kept under a sentinel rule instead of dropped.
			rule := ""
			if m.RuleID != nil {
				rule = *m.RuleID
			}

			line := normPos(m.Line)
			col := normPos(m.Column)
			endLine := m.EndLine
			if endLine == 0 {
				endLine = line
			}
			endCol := m.EndColumn
			if endCol == 0 {
				endCol = col
			}

			issue := model.Issue{
				Path:      path,
				Line:      line,
				Column:    col,
				EndLine:   endLine,
				EndColumn: endCol,
				Severity:  sev,
				Rule:      namespace("eslint", rule),
				Message:   m.Message,
				Linter:    "eslint",
			}

			fix := m.Fix
			if fix == nil {
				for _, s := range m.Suggestions {
					if s.Fix != nil {
						fix = s.Fix
						break
					}
				}
			}
			if fix != nil {
				issue.Fix = []model.FixEdit{{Start: fix.Range[0], End: fix.Range[1], Text: fix.Text}}
			}

			issues = append(issues, issue)
		}
	}

	if err := validateAll("eslint", issues); err != nil {
		return nil, err
	}
	return issues, nil
}
