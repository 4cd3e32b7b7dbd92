package runner

import (
	"strings"

	"github.com/hexsprite/lintmesh/internal/model"
	"github.com/hexsprite/lintmesh/internal/util"
)

// FilterScope narrows issues from tools that always analyze the whole
// project down to the caller-requested patterns. No patterns, a
// current-directory pattern, or any glob pattern keeps everything: in the
// glob case the file resolver already narrowed the candidate set, and a
// prefix match here would wrongly drop matches living outside a literal
// prefix. Otherwise an issue survives when its path equals a pattern or sits
// under it as a directory.
func FilterScope(issues []model.Issue, patterns []string) []model.Issue {
	if len(patterns) == 0 {
		return issues
	}

	prefixes := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		p := util.NormalizePattern(raw)
		if p == "." {
			return issues
		}
		if util.HasGlobMeta(p) {
			return issues
		}
		prefixes = append(prefixes, p)
	}

	var kept []model.Issue
	for _, is := range issues {
		for _, p := range prefixes {
			if is.Path == p || strings.HasPrefix(is.Path, p+"/") {
				kept = append(kept, is)
				break
			}
		}
	}
	return kept
}
