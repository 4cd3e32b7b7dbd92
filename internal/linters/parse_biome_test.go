package linters

import (
	"errors"
	"testing"

	"github.com/hexsprite/lintmesh/internal/model"
)

func TestParseBiome(t *testing.T) {
	t.Run("byte spans resolved against embedded source", func(t *testing.T) {
		// Real biome lint --reporter=json output shape
		raw := `{
			"summary": {"errors": 1, "warnings": 0},
			"diagnostics": [
				{
					"category": "lint/suspicious/noDoubleEquals",
					"severity": "error",
					"description": "Use === instead of ==.",
					"location": {
						"path": {"file": "src/a.ts"},
						"span": [25, 27],
						"sourceCode": "const a = 1;\nconst b = a == null;\n"
					},
					"tags": ["fixable"]
				}
			]
		}`

		issues, err := parseBiome(raw, "/work/app")
		if err != nil {
			t.Fatalf("parseBiome: %v", err)
		}
		if len(issues) != 1 {
			t.Fatalf("Expected 1 issue, got %d", len(issues))
		}

		is := issues[0]
		if is.Line != 2 || is.Column != 13 {
			t.Errorf("position = %d:%d, want 2:13", is.Line, is.Column)
		}
		if is.EndLine != 2 || is.EndColumn != 15 {
			t.Errorf("end = %d:%d, want 2:15", is.EndLine, is.EndColumn)
		}
		if is.Rule != "biome/noDoubleEquals" {
			t.Errorf("Rule = %q, want biome/noDoubleEquals", is.Rule)
		}
		if is.Severity != model.SeverityError {
			t.Errorf("Severity = %v, want error", is.Severity)
		}
		if is.RuleMeta == nil {
			t.Fatal("RuleMeta should be set")
		}
		if is.RuleMeta.DocURL != "https://biomejs.dev/linter/rules/no-double-equals" {
			t.Errorf("DocURL = %q", is.RuleMeta.DocURL)
		}
		if is.RuleMeta.Category != "lint/suspicious/noDoubleEquals" {
			t.Errorf("Category = %q", is.RuleMeta.Category)
		}
		if !is.RuleMeta.Fixable {
			t.Error("fixable tag should set RuleMeta.Fixable")
		}
	})

	t.Run("columns count runes, offsets count bytes", func(t *testing.T) {
		raw := `{
			"diagnostics": [
				{
					"category": "lint/style/useConst",
					"severity": "warning",
					"description": "d",
					"location": {
						"path": {"file": "src/u.ts"},
						"span": [6, 8],
						"sourceCode": "// héllo\nx == y\n"
					},
					"tags": []
				}
			]
		}`

		issues, err := parseBiome(raw, "/work/app")
		if err != nil {
			t.Fatalf("parseBiome: %v", err)
		}
		is := issues[0]
		// Offset 6 sits after "// h" plus a two-byte é: five runes in, column 6.
		if is.Line != 1 || is.Column != 6 {
			t.Errorf("position = %d:%d, want 1:6", is.Line, is.Column)
		}
		if is.EndColumn != 8 {
			t.Errorf("EndColumn = %d, want 8", is.EndColumn)
		}
		if is.RuleMeta.DocURL != "https://biomejs.dev/linter/rules/use-const" {
			t.Errorf("DocURL = %q, want kebab-cased slug", is.RuleMeta.DocURL)
		}
	})

	t.Run("severity mapping", func(t *testing.T) {
		tests := []struct {
			raw  string
			want model.Severity
		}{
			{"error", model.SeverityError},
			{"warning", model.SeverityWarning},
			{"information", model.SeverityInfo},
			{"hint", model.SeverityWarning}, // default
		}

		for _, tt := range tests {
			raw := `{
				"diagnostics": [
					{
						"category": "lint/style/useConst",
						"severity": "` + tt.raw + `",
						"description": "d",
						"location": {"path": {"file": "a.ts"}, "span": [0, 1], "sourceCode": "xx"}
					}
				]
			}`
			issues, err := parseBiome(raw, "/work/app")
			if err != nil {
				t.Fatalf("parseBiome(%s): %v", tt.raw, err)
			}
			if issues[0].Severity != tt.want {
				t.Errorf("severity %q mapped to %v, want %v", tt.raw, issues[0].Severity, tt.want)
			}
		}
	})

	t.Run("diagnostic without file or span is skipped", func(t *testing.T) {
		raw := `{
			"diagnostics": [
				{"category": "configuration", "severity": "error", "description": "project-level", "location": {}},
				{"category": "lint/style/useConst", "severity": "warning", "description": "kept",
				 "location": {"path": {"file": "a.ts"}, "span": [0, 1], "sourceCode": "xx"}}
			]
		}`

		issues, err := parseBiome(raw, "/work/app")
		if err != nil {
			t.Fatalf("parseBiome: %v", err)
		}
		if len(issues) != 1 || issues[0].Message != "kept" {
			t.Fatalf("Expected only the located diagnostic, got %d", len(issues))
		}
	})

	t.Run("reversed span is malformed", func(t *testing.T) {
		raw := `{
			"diagnostics": [
				{"category": "lint/style/useConst", "severity": "warning", "description": "d",
				 "location": {"path": {"file": "a.ts"}, "span": [20, 5], "sourceCode": "abcdefghij\nklmnopqrstuvwxyz"}}
			]
		}`

		_, err := parseBiome(raw, "/work/app")
		if !errors.Is(err, ErrMalformedOutput) {
			t.Errorf("err = %v, want ErrMalformedOutput", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		for _, raw := range []string{"", " \n ", `{}`, `{"diagnostics": []}`} {
			issues, err := parseBiome(raw, "/work/app")
			if err != nil {
				t.Fatalf("parseBiome(%q): %v", raw, err)
			}
			if len(issues) != 0 {
				t.Errorf("parseBiome(%q) = %d issues, want 0", raw, len(issues))
			}
		}
	})

	t.Run("invalid JSON is malformed", func(t *testing.T) {
		_, err := parseBiome(`internal error: Biome exited unexpectedly`, "/work/app")
		if !errors.Is(err, ErrMalformedOutput) {
			t.Errorf("err = %v, want ErrMalformedOutput", err)
		}
	})
}

func TestOffsetWalker(t *testing.T) {
	w := newOffsetWalker("ab\ncd\nef")

	line, col := w.locate(0)
	if line != 1 || col != 1 {
		t.Errorf("locate(0) = %d:%d, want 1:1", line, col)
	}
	line, col = w.locate(4)
	if line != 2 || col != 2 {
		t.Errorf("locate(4) = %d:%d, want 2:2", line, col)
	}
	line, col = w.locate(6)
	if line != 3 || col != 1 {
		t.Errorf("locate(6) = %d:%d, want 3:1", line, col)
	}

	// Past-the-end offsets clamp to the final position.
	line, col = w.locate(100)
	if line != 3 || col != 3 {
		t.Errorf("locate(100) = %d:%d, want 3:3", line, col)
	}

	// Out-of-order queries restart the scan instead of going wrong.
	line, col = w.locate(4)
	if line != 2 || col != 2 {
		t.Errorf("locate(4) after rewind = %d:%d, want 2:2", line, col)
	}
}

func TestKebabCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"noDoubleEquals", "no-double-equals"},
		{"useConst", "use-const"},
		{"noVar", "no-var"},
		{"plain", "plain"},
		{"Upper", "upper"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := kebabCase(tt.input); got != tt.want {
			t.Errorf("kebabCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
