package linters

import (
	"fmt"
	"path/filepath"

	"github.com/hexsprite/lintmesh/internal/model"
)

// ParseFunc turns one tool's raw captured output into canonical issues.
// Parsers never touch the filesystem; root is used only to re-express
// reported paths relative to the working root.
type ParseFunc func(raw, root string) ([]model.Issue, error)

func relPath(root, p string) string {
	if filepath.IsAbs(p) {
		if r, err := filepath.Rel(root, p); err == nil {
			p = r
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// namespace qualifies a native rule id with its tool. Tools that report no
// rule id (file-level parse failures) get the parse-error sentinel.
func namespace(tool, id string) string {
	if id == "" {
		return tool + "/parse-error"
	}
	return tool + "/" + id
}

func normPos(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func validateAll(tool string, issues []model.Issue) error {
	for _, is := range issues {
		if err := is.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedOutput, tool, err)
		}
	}
	return nil
}
