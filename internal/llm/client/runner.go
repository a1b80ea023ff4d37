package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// Command describes one external process invocation. Args are passed to the
// process as-is; nothing is ever interpreted by a shell.
type Command struct {
	Name  string
	Args  []string
	Stdin io.Reader
}

// Output is what a finished process left behind.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands with os/exec and kills them when ctx is done.
type ExecRunner struct {
	// WaitDelay bounds how long Run waits for output pipes after a kill.
	WaitDelay time.Duration
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: 2 * time.Second}
}

// Run returns a nil error only when the process exited with status 0. When ctx
// ends first the context error is returned so callers can tell a timeout from a
// model failure.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Output, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = c.Stdin
	if r != nil {
		cmd.WaitDelay = r.WaitDelay
	}

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	out.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}
	return out, err
}
