package model

import (
	"fmt"
	"path/filepath"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityError):
		return SeverityError
	case string(SeverityWarning):
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityInfo: 1, SeverityWarning: 2, SeverityError: 3}
	return order[a] >= order[b]
}

// FixEdit replaces the byte range [Start, End) of the original file content
// with Text. Empty Text deletes the range. Consumers must apply edits in
// reverse offset order so earlier offsets stay valid.
type FixEdit struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type RuleMeta struct {
	DocURL   string `json:"docUrl,omitempty"`
	Category string `json:"category,omitempty"`
	Fixable  bool   `json:"fixable,omitempty"`
}

type Issue struct {
	Path      string    `json:"path"`
	Line      int       `json:"line"`
	Column    int       `json:"column"`
	EndLine   int       `json:"endLine"`
	EndColumn int       `json:"endColumn"`
	Severity  Severity  `json:"severity"`
	Rule      string    `json:"rule"`
	Message   string    `json:"message"`
	Linter    string    `json:"linter"`
	Fix       []FixEdit `json:"fix,omitempty"`
	RuleMeta  *RuleMeta `json:"ruleMeta,omitempty"`
}

// Validate reports the first structural violation. Parsers run it on every
// issue they construct; a failure there means the tool output (or the parser)
// is broken, so it surfaces as a malformed-output error rather than a clamped
// coordinate.
func (i Issue) Validate() error {
	if i.Path == "" {
		return fmt.Errorf("issue has empty path")
	}
	if filepath.IsAbs(i.Path) {
		return fmt.Errorf("issue path %q is absolute, want root-relative", i.Path)
	}
	if i.Line < 1 || i.Column < 1 {
		return fmt.Errorf("issue %s has non-positive position %d:%d", i.Path, i.Line, i.Column)
	}
	if i.EndLine < i.Line {
		return fmt.Errorf("issue %s:%d endLine %d precedes line", i.Path, i.Line, i.EndLine)
	}
	if i.EndLine == i.Line && i.EndColumn < i.Column {
		return fmt.Errorf("issue %s:%d:%d endColumn %d precedes column", i.Path, i.Line, i.Column, i.EndColumn)
	}
	switch i.Severity {
	case SeverityError, SeverityWarning, SeverityInfo:
	default:
		return fmt.Errorf("issue %s:%d has unknown severity %q", i.Path, i.Line, i.Severity)
	}
	if i.Rule == "" {
		return fmt.Errorf("issue %s:%d has empty rule", i.Path, i.Line)
	}
	if i.Linter == "" {
		return fmt.Errorf("issue %s:%d has empty linter", i.Path, i.Line)
	}
	return nil
}

func (i Issue) Fixable() bool {
	return len(i.Fix) > 0
}
