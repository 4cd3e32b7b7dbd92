// Package files resolves the caller's path patterns into the concrete set of
// lintable source files handed to every tool.
package files

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hexsprite/lintmesh/internal/util"
)

// Options controls one resolution pass. Exclude entries are directory names
// pruned wherever they appear under the root.
type Options struct {
	RootDir  string
	Patterns []string
	Exclude  []string
}

var lintableExts = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".cjs": true,
	".mts": true,
	".cts": true,
}

// Lintable reports whether the path carries an extension any registered
// linter understands.
func Lintable(path string) bool {
	return lintableExts[filepath.Ext(path)]
}

// Resolve expands patterns into a sorted, deduplicated list of absolute file
// paths. No patterns (or "."), means the whole tree under the root. A pattern
// naming a directory walks it; a glob pattern expands relative to the root; a
// pattern matching nothing contributes nothing, the caller decides whether an
// empty result is worth reporting.
func Resolve(opts Options) ([]string, error) {
	root, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	r := &resolver{excluded: excluded, seen: map[string]bool{}}

	if len(opts.Patterns) == 0 {
		r.walk(root)
	}
	for _, raw := range opts.Patterns {
		p := util.NormalizePattern(raw)
		switch {
		case p == ".":
			r.walk(root)
		case util.HasGlobMeta(p):
			matches, err := filepath.Glob(filepath.Join(root, p))
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				r.add(m)
			}
		default:
			target := p
			if !filepath.IsAbs(target) {
				target = filepath.Join(root, p)
			}
			r.add(target)
		}
	}

	sort.Strings(r.out)
	return r.out, nil
}

type resolver struct {
	excluded map[string]bool
	seen     map[string]bool
	out      []string
}

// add accepts a file or directory path, walking directories and keeping only
// lintable files.
func (r *resolver) add(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		r.walk(path)
		return
	}
	r.keep(path)
}

func (r *resolver) walk(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if r.excluded[d.Name()] && path != root {
				return fs.SkipDir
			}
			return nil
		}
		r.keep(path)
		return nil
	})
}

func (r *resolver) keep(path string) {
	if !Lintable(path) || r.seen[path] {
		return
	}
	r.seen[path] = true
	r.out = append(r.out, path)
}
