package iodetect

import (
	"context"
	"errors"
	"os/exec"
)

// CommandRunner runs external commands. Tests replace it with a fake.
type CommandRunner interface {
	// Run executes a command and returns its combined output and exit
	// code. An error means the command did not run to completion, for
	// example it could not start or the context was cancelled.
	Run(ctx context.Context, workDir, name string, args ...string) (output []byte, code int, err error)
}

// ExecRunner implements CommandRunner with os/exec.
type ExecRunner struct{}

// NewRunner creates a new ExecRunner.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command. A nonzero exit is reported by the code, not by
// the error.
func (r *ExecRunner) Run(
	ctx context.Context,
	workDir, name string,
	args ...string,
) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	out, err := cmd.CombinedOutput()
	if err == nil {
		return out, 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return out, exitErr.ExitCode(), nil
	}
	return out, -1, err
}

var _ CommandRunner = (*ExecRunner)(nil)
