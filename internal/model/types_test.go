package model

import (
	"testing"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
	}{
		{"error", SeverityError},
		{"warning", SeverityWarning},
		{"info", SeverityInfo},
		{"fatal", SeverityInfo}, // default
		{"", SeverityInfo},      // default
	}

	for _, tt := range tests {
		got := ParseSeverity(tt.input)
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSeverityGTE(t *testing.T) {
	tests := []struct {
		a, b Severity
		want bool
	}{
		{SeverityError, SeverityError, true},
		{SeverityError, SeverityWarning, true},
		{SeverityError, SeverityInfo, true},
		{SeverityWarning, SeverityError, false},
		{SeverityWarning, SeverityWarning, true},
		{SeverityInfo, SeverityWarning, false},
		{SeverityInfo, SeverityInfo, true},
	}

	for _, tt := range tests {
		got := SeverityGTE(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("SeverityGTE(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func validIssue() Issue {
	return Issue{
		Path:      "src/a.ts",
		Line:      10,
		Column:    5,
		EndLine:   10,
		EndColumn: 12,
		Severity:  SeverityError,
		Rule:      "eslint/no-unused-vars",
		Message:   "x is defined but never used",
		Linter:    "eslint",
	}
}

func TestIssue_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validIssue().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("point span", func(t *testing.T) {
		i := validIssue()
		i.EndLine, i.EndColumn = i.Line, i.Column
		if err := i.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("multi-line span ignores columns", func(t *testing.T) {
		i := validIssue()
		i.EndLine = i.Line + 3
		i.EndColumn = 1 // smaller than Column, legal across lines
		if err := i.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	bad := []struct {
		name   string
		mutate func(*Issue)
	}{
		{"empty path", func(i *Issue) { i.Path = "" }},
		{"absolute path", func(i *Issue) { i.Path = "/src/a.ts" }},
		{"zero line", func(i *Issue) { i.Line = 0 }},
		{"zero column", func(i *Issue) { i.Column = 0 }},
		{"endLine before line", func(i *Issue) { i.EndLine = i.Line - 1 }},
		{"endColumn before column", func(i *Issue) { i.EndLine = i.Line; i.EndColumn = i.Column - 1 }},
		{"unknown severity", func(i *Issue) { i.Severity = "critical" }},
		{"empty rule", func(i *Issue) { i.Rule = "" }},
		{"empty linter", func(i *Issue) { i.Linter = "" }},
	}

	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			i := validIssue()
			tt.mutate(&i)
			if err := i.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestIssue_Fixable(t *testing.T) {
	i := validIssue()
	if i.Fixable() {
		t.Error("Fixable() should return false without edits")
	}
	i.Fix = []FixEdit{{Start: 120, End: 127, Text: ""}}
	if !i.Fixable() {
		t.Error("Fixable() should return true with edits")
	}
}
