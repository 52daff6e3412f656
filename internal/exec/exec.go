// Package exec runs the external commands behind installer steps.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned for a command with no program name.
var ErrEmptyCommand = errors.New("empty command")

// Command is a program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// FromArgv builds a Command from an argv list such as ["tar", "xf", "a.tar"].
func FromArgv(argv []string) (Command, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return Command{}, ErrEmptyCommand
	}
	return Command{Name: argv[0], Args: argv[1:]}, nil
}

// String renders the command as "name arg1 arg2 ...".
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the output and exit code of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner is an interface for executing external commands.
// Use DefaultRunner for real commands and MockRunner for tests.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// DefaultRunner executes commands on the real system.
type DefaultRunner struct{}

// Run executes cmd and returns the captured stdout, stderr, and exit code.
func (DefaultRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, fmt.Errorf("command %q failed: %w\nstderr: %s", c.String(), err, strings.TrimSpace(stderr.String()))
	}

	return result, nil
}

// CommandExists checks whether a command is available on the system PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// MockRunner is a test double that returns pre-configured results keyed by
// Command.String().
type MockRunner struct {
	Results map[string]Result
	Calls   []string
}

// Run records the call and returns the matching result. Unknown commands and
// non-zero exit codes are errors.
func (m *MockRunner) Run(ctx context.Context, c Command) (Result, error) {
	key := c.String()
	m.Calls = append(m.Calls, key)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if result, ok := m.Results[key]; ok {
		if result.ExitCode != 0 {
			return result, fmt.Errorf("command %q exited with code %d", key, result.ExitCode)
		}
		return result, nil
	}

	return Result{}, fmt.Errorf("unexpected command: %q", key)
}
