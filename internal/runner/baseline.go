package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hexsprite/lintmesh/internal/model"
	"github.com/hexsprite/lintmesh/internal/util"
)

// Baseline is a set of issue fingerprints accepted as pre-existing debt.
// Runs suppress any issue whose fingerprint appears here.
type Baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

// IssueFingerprint keys an issue for baseline matching.
func IssueFingerprint(is model.Issue) string {
	return util.Fingerprint(is.Rule, is.Path, is.Line, is.Column, is.Message)
}

// LoadBaseline reads a baseline file, accepting either a bare JSON array of
// fingerprints or the full struct form.
func LoadBaseline(path string) (Baseline, error) {
	var b Baseline
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		b.Fingerprints = make(map[string]bool, len(arr))
		for _, fp := range arr {
			b.Fingerprints[fp] = true
		}
		return b, nil
	}

	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

func (b Baseline) Filter(issues []model.Issue) []model.Issue {
	if len(b.Fingerprints) == 0 {
		return issues
	}
	var out []model.Issue
	for _, is := range issues {
		if b.Fingerprints[IssueFingerprint(is)] {
			continue
		}
		out = append(out, is)
	}
	return out
}

// WriteBaseline records the given issues' fingerprints as accepted debt.
// Map keys marshal sorted, so the file diffs cleanly run to run.
func WriteBaseline(path string, issues []model.Issue) error {
	b := Baseline{
		GeneratedAt:  time.Now().UTC(),
		Fingerprints: make(map[string]bool, len(issues)),
	}
	for _, is := range issues {
		b.Fingerprints[IssueFingerprint(is)] = true
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
