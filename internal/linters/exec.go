package linters

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Command describes one external linter invocation.
type Command struct {
	Bin     string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// ExecResult carries the captured streams and exit state of one invocation.
// A nonzero ExitCode is not an error at this layer; several linters exit
// nonzero to signal that issues were found.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Execer abstracts linter process execution so adapters can run against a
// fake in tests. Run returns an error only when the process could not be
// launched at all.
type Execer interface {
	Run(ctx context.Context, cmd Command) (ExecResult, error)
	LookPath(name string) (string, error)
}

type osExecer struct{}

func NewExecer() Execer { return osExecer{} }

func (osExecer) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (osExecer) Run(ctx context.Context, c Command) (ExecResult, error) {
	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, c.Bin, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		return res, nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
