package util

import "strings"

// Snippet returns the 1-based lines [line-context, line+context] of content,
// clamped to the file. A line outside the file returns nil.
func Snippet(content string, line, context int) []string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return nil
	}
	s := line - 1 - context
	if s < 0 {
		s = 0
	}
	e := line - 1 + context
	if e > len(lines)-1 {
		e = len(lines) - 1
	}
	return lines[s : e+1]
}
