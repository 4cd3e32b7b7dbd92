package linters

import "errors"

var (
	// ErrMalformedOutput indicates a tool emitted syntactically invalid output
	// for a format that guarantees structure.
	ErrMalformedOutput = errors.New("malformed linter output")

	// ErrNotFound indicates no usable binary was located for a tool.
	ErrNotFound = errors.New("linter binary not found")

	// ErrTimeout indicates a tool exceeded its configured time budget.
	ErrTimeout = errors.New("linter timed out")

	// ErrExecFailed indicates a tool process failed outside the
	// "issues found" exit path.
	ErrExecFailed = errors.New("linter execution failed")
)
