package config

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its standard output.
	// A non-zero exit still returns whatever was written to stdout.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its stdout. Stderr is kept out of the
// output, since the sf CLI prints warnings there next to its JSON, and is
// attached to the error instead.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = nil

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("%w: %s", err, msg)
		}
		return stdout.String(), err
	}
	return stdout.String(), nil
}
