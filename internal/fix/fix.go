// Package fix applies the byte-offset edits linters attach to issues.
package fix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hexsprite/lintmesh/internal/model"
)

// Result summarizes one apply pass.
type Result struct {
	FilesChanged int
	Applied      int
	Skipped      int
}

// Apply rewrites files under root with every applicable fix. Edits are
// applied back-to-front so earlier offsets stay valid; overlapping or stale
// edits are skipped, never half-applied. Files are replaced via rename so a
// crash cannot leave a truncated source file.
func Apply(root string, issues []model.Issue) (Result, error) {
	byFile := map[string][]model.FixEdit{}
	for _, is := range issues {
		if !is.Fixable() {
			continue
		}
		byFile[is.Path] = append(byFile[is.Path], is.Fix...)
	}

	var res Result
	var errs []error

	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		applied, skipped, err := applyFile(filepath.Join(root, filepath.FromSlash(rel)), byFile[rel])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rel, err))
			continue
		}
		res.Applied += applied
		res.Skipped += skipped
		if applied > 0 {
			res.FilesChanged++
		}
	}
	return res, errors.Join(errs...)
}

func applyFile(path string, edits []model.FixEdit) (applied, skipped int, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start > edits[j].Start
		}
		return edits[i].End > edits[j].End
	})

	lastStart := len(content) + 1
	for _, e := range edits {
		if e.Start < 0 || e.End < e.Start || e.End > len(content) {
			skipped++
			continue
		}
		if e.End > lastStart {
			skipped++
			continue
		}
		var next []byte
		next = append(next, content[:e.Start]...)
		next = append(next, e.Text...)
		next = append(next, content[e.End:]...)
		content = next
		lastStart = e.Start
		applied++
	}

	if applied == 0 {
		return 0, skipped, nil
	}
	return applied, skipped, replaceFile(path, content)
}

func replaceFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".lintmesh-fix-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
