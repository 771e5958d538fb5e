package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExecutionResult holds the outcome of a command execution.
type ExecutionResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited with status 0.
func (r *ExecutionResult) Success() bool {
	return r.ExitCode == 0
}

// Executor defines an interface for running external commands.
// This allows for mocking in tests.
type Executor interface {
	Run(command string, args ...string) (*ExecutionResult, error)
}

// ErrTimeout is returned when a command exceeds the executor timeout.
var ErrTimeout = errors.New("command timed out")

// CommandExecutor runs commands on the host system. A zero Timeout means no limit.
type CommandExecutor struct {
	Timeout time.Duration
}

// NewCommandExecutor creates a new CommandExecutor.
func NewCommandExecutor(timeout time.Duration) *CommandExecutor {
	return &CommandExecutor{Timeout: timeout}
}

// Run executes the given command and returns its result.
// A non-zero exit status is reported through ExecutionResult.ExitCode, not as
// an error; errors are reserved for commands that could not run to completion.
func (e *CommandExecutor) Run(command string, args ...string) (*ExecutionResult, error) {
	ctx := context.Background()
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %s: %s %s", ErrTimeout, e.Timeout, command, strings.Join(args, " "))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
	}

	return &ExecutionResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
