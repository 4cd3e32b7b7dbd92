package util

import "strings"

// HasGlobMeta reports whether a pattern contains glob metacharacters and so
// cannot be treated as a literal path.
func HasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[]{}")
}

// NormalizePattern puts a caller-supplied pattern into comparable form:
// forward slashes, no "./" prefix, no trailing slashes.
func NormalizePattern(pattern string) string {
	p := strings.ReplaceAll(pattern, "\\", "/")
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "./" {
		return "."
	}
	p = strings.TrimPrefix(p, "./")
	if p == "" {
		return "."
	}
	return p
}
