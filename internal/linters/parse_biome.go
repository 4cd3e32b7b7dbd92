package linters

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hexsprite/lintmesh/internal/model"
)

const biomeDocBase = "https://biomejs.dev/linter/rules/"

// biome lint --reporter=json reports byte spans only; each diagnostic embeds
// the source text it was produced against, and line/column are recovered by
// walking that text.
type biomeReport struct {
	Summary     json.RawMessage   `json:"summary"`
	Diagnostics []biomeDiagnostic `json:"diagnostics"`
}

type biomeDiagnostic struct {
	Category    string        `json:"category"`
	Severity    string        `json:"severity"`
	Description string        `json:"description"`
	Location    biomeLocation `json:"location"`
	Tags        []string      `json:"tags"`
}

type biomeLocation struct {
	Path       biomePath `json:"path"`
	Span       []int     `json:"span"`
	SourceCode string    `json:"sourceCode"`
}

type biomePath struct {
	File string `json:"file"`
}

func parseBiome(raw, root string) ([]model.Issue, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var report biomeReport
	if err := json.Unmarshal([]byte(trimmed), &report); err != nil {
		return nil, fmt.Errorf("%w: biome: %v", ErrMalformedOutput, err)
	}

	var issues []model.Issue
	for _, d := range report.Diagnostics {
		if d.Location.Path.File == "" || len(d.Location.Span) < 2 {
			continue
		}

		sev := model.SeverityWarning
		switch d.Severity {
		case "error":
			sev = model.SeverityError
		case "information", "info":
			sev = model.SeverityInfo
		}

		// The canonical rule id is the last segment of the category path,
		// e.g. lint/suspicious/noDoubleEquals -> noDoubleEquals.
		rule := d.Category
		if i := strings.LastIndexByte(rule, '/'); i >= 0 {
			rule = rule[i+1:]
		}

		walker := newOffsetWalker(d.Location.SourceCode)
		line, col := walker.locate(d.Location.Span[0])
		endLine, endCol := walker.locate(d.Location.Span[1])

		fixable := false
		for _, tag := range d.Tags {
			if tag == "fixable" {
				fixable = true
				break
			}
		}

		issues = append(issues, model.Issue{
			Path:      relPath(root, d.Location.Path.File),
			Line:      line,
			Column:    col,
			EndLine:   endLine,
			EndColumn: endCol,
			Severity:  sev,
			Rule:      namespace("biome", rule),
			Message:   d.Description,
			Linter:    "biome",
			RuleMeta: &model.RuleMeta{
				DocURL:   biomeDocBase + kebabCase(rule),
				Category: d.Category,
				Fixable:  fixable,
			},
		})
	}

	if err := validateAll("biome", issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// offsetWalker converts byte offsets into 1-indexed line/column pairs with a
// single forward scan. Queries must arrive in ascending offset order; an
// out-of-order query restarts the scan.
type offsetWalker struct {
	src  string
	pos  int
	line int
	col  int
}

func newOffsetWalker(src string) *offsetWalker {
	return &offsetWalker{src: src, line: 1, col: 1}
}

func (w *offsetWalker) locate(offset int) (line, col int) {
	if offset < w.pos {
		*w = offsetWalker{src: w.src, line: 1, col: 1}
	}
	for w.pos < offset && w.pos < len(w.src) {
		r, size := utf8.DecodeRuneInString(w.src[w.pos:])
		if r == '\n' {
			w.line++
			w.col = 1
		} else {
			w.col++
		}
		w.pos += size
	}
	return w.line, w.col
}

// kebabCase lowers biome's camelCase rule names into the form its
// documentation slugs use: noDoubleEquals -> no-double-equals.
func kebabCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
