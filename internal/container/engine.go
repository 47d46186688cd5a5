// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

const (
	// RuntimeDocker is the default container runtime binary.
	RuntimeDocker Runtime = "docker"
	// RuntimeNvidiaDocker is the GPU-aware container runtime binary.
	RuntimeNvidiaDocker Runtime = "nvidia-docker"

	// defaultWaitDelay bounds how long Run waits for the child after an
	// interrupt before killing it.
	defaultWaitDelay = 10 * time.Second
)

var (
	// ErrInvalidRuntime is the sentinel error wrapped by InvalidRuntimeError.
	ErrInvalidRuntime = errors.New("invalid container runtime")

	// ErrRuntimeNotFound is the sentinel error wrapped by RuntimeNotFoundError.
	ErrRuntimeNotFound = errors.New("container runtime not found")
)

type (
	// Runtime names a container runtime CLI binary, either a bare name
	// looked up on PATH or a path to the executable.
	Runtime string

	// InvalidRuntimeError is returned when a Runtime is empty or whitespace-only.
	InvalidRuntimeError struct {
		Value Runtime
	}

	// RuntimeNotFoundError is returned when a runtime binary cannot be located.
	RuntimeNotFoundError struct {
		Runtime Runtime
		Err     error
	}

	// ExecCommandFunc is a function that creates an exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// LookPathFunc resolves a binary name to an executable path.
	LookPathFunc func(file string) (string, error)

	// EngineOption configures an Engine.
	EngineOption func(*Engine)

	// Engine runs container-runtime CLI commands, wiring the child to the
	// configured standard streams and waiting for it to exit.
	Engine struct {
		execCommand ExecCommandFunc
		lookPath    LookPathFunc
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
		waitDelay   time.Duration
	}

	// RunResult contains the result of running a runtime command.
	RunResult struct {
		// Runtime is the runtime that was invoked.
		Runtime Runtime
		// BinaryPath is the resolved executable path.
		BinaryPath string
		// ExitCode is the child's exit status. A child killed by a signal
		// reports 128+signal on Unix.
		ExitCode int
	}
)

// String returns the string representation of the Runtime.
func (r Runtime) String() string { return string(r) }

// Validate returns an error if the Runtime is empty or whitespace-only.
func (r Runtime) Validate() error {
	if strings.TrimSpace(string(r)) == "" {
		return &InvalidRuntimeError{Value: r}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidRuntimeError) Error() string {
	return fmt.Sprintf("invalid container runtime %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidRuntime for errors.Is() compatibility.
func (e *InvalidRuntimeError) Unwrap() error { return ErrInvalidRuntime }

// Error implements the error interface.
func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("container runtime '%s' is not available: %v", e.Runtime, e.Err)
}

// Unwrap returns ErrRuntimeNotFound and the lookup error.
func (e *RuntimeNotFoundError) Unwrap() []error { return []error{ErrRuntimeNotFound, e.Err} }

// --- Option Functions ---

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) EngineOption {
	return func(e *Engine) {
		e.execCommand = fn
	}
}

// WithLookPath sets a custom binary lookup function for testing.
func WithLookPath(fn LookPathFunc) EngineOption {
	return func(e *Engine) {
		e.lookPath = fn
	}
}

// WithStdio sets the standard streams handed to the child process.
// A nil stream is connected to the null device.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) EngineOption {
	return func(e *Engine) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithWaitDelay sets how long Run waits after an interrupt before killing the child.
func WithWaitDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.waitDelay = d
	}
}

// --- Constructor ---

// NewEngine creates an Engine attached to the process's own standard streams.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		waitDelay:   defaultWaitDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BinaryPath resolves the runtime to an executable path.
func (e *Engine) BinaryPath(rt Runtime) (string, error) {
	if err := rt.Validate(); err != nil {
		return "", err
	}
	path, err := e.lookPath(string(rt))
	if err != nil {
		return "", &RuntimeNotFoundError{Runtime: rt, Err: err}
	}
	return path, nil
}

// Run executes the runtime with args and waits for it to exit.
// A non-zero exit status is reported in RunResult.ExitCode, not as an error;
// errors are reserved for failures to locate or start the binary.
//
// When ctx is cancelled the child receives an interrupt, giving the runtime a
// chance to forward it to the container, and is killed if it has not exited
// within the wait delay.
func (e *Engine) Run(ctx context.Context, rt Runtime, args []string) (*RunResult, error) {
	path, err := e.BinaryPath(rt)
	if err != nil {
		return nil, err
	}

	cmd := e.execCommand(ctx, path, args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Cancel = func() error { return interrupt(cmd.Process) }
	cmd.WaitDelay = e.waitDelay

	result := &RunResult{Runtime: rt, BinaryPath: path}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to start %s: %w", rt, err)
		}
		result.ExitCode = exitCode(exitErr)
	}

	return result, nil
}
