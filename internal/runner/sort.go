package runner

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hexsprite/lintmesh/internal/model"
)

// SortIssues orders issues by path, then line, then column. Path comparison
// is locale-aware, and the sort is stable: issues at the same position keep
// their merge order.
func SortIssues(issues []model.Issue) {
	c := collate.New(language.Und)
	sort.SliceStable(issues, func(a, b int) bool {
		ia, ib := issues[a], issues[b]
		if cmp := c.CompareString(ia.Path, ib.Path); cmp != 0 {
			return cmp < 0
		}
		if ia.Line != ib.Line {
			return ia.Line < ib.Line
		}
		return ia.Column < ib.Column
	})
}
