package runner

import (
	"strings"

	"github.com/hexsprite/lintmesh/internal/config"
	"github.com/hexsprite/lintmesh/internal/model"
	"github.com/hexsprite/lintmesh/internal/util"
)

// ApplyIgnores drops issues matching config ignore rules. A rule with both
// fields set requires both to match; a rule with neither set matches
// nothing.
func ApplyIgnores(issues []model.Issue, rules []config.IgnoreRule) []model.Issue {
	if len(rules) == 0 {
		return issues
	}
	var out []model.Issue
	for _, is := range issues {
		if !ignored(is, rules) {
			out = append(out, is)
		}
	}
	return out
}

func ignored(is model.Issue, rules []config.IgnoreRule) bool {
	for _, rule := range rules {
		if rule.Rule == "" && rule.Path == "" {
			continue
		}
		if rule.Rule != "" && !strings.EqualFold(rule.Rule, is.Rule) {
			continue
		}
		if rule.Path != "" {
			p := util.NormalizePattern(rule.Path)
			if is.Path != p && !strings.HasPrefix(is.Path, p+"/") {
				continue
			}
		}
		return true
	}
	return false
}
