package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner invokes external command line tools.
type Runner interface {
	// Run executes name with args and returns stdout. Spawn failures and
	// non-zero exits are both reported as errors.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError reports a tool that started but exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Command, e.Code, e.Stderr)
}

// Exec runs commands as child processes.
type Exec struct {
	// Dir is the working directory for child processes; empty means the
	// current directory.
	Dir string
}

// New returns an Exec runner.
func New() Exec {
	return Exec{}
}

// Run executes the command and captures stdout and stderr separately.
func (e Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), &ExitError{
			Command: CommandLine(name, args...),
			Code:    exitErr.ExitCode(),
			Stderr:  strings.TrimSpace(stderr.String()),
		}
	}
	return nil, fmt.Errorf("start %s: %w", name, err)
}

// CommandLine joins a command and its arguments with single spaces.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
