package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// was killed, in case a child inherited them.
const waitDelay = 2 * time.Second

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Run starts a command with no stdin and waits for it to exit
	Run(ctx context.Context, name string, args ...string) (Output, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// Output is what a finished command produced. Combined holds stdout and
// stderr written to one buffer, so chunks keep the order in which the
// process wrote them.
type Output struct {
	Combined []byte
	ExitCode int
}

// StartError means the command never ran.
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return "start " + e.Name + ": " + e.Err.Error()
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Run executes name and returns its combined output and exit status. A
// non-zero exit is not an error. If ctx ends first the process is killed
// and ctx.Err() is returned along with whatever output was collected.
func (e *SystemExecutor) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	// Same writer for both streams: os/exec then uses a single pipe.
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		// Start refuses to run under a context that has already ended.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Output{ExitCode: -1}, ctxErr
		}
		return Output{ExitCode: -1}, &StartError{Name: name, Err: err}
	}

	err := cmd.Wait()
	out := Output{Combined: buf.Bytes(), ExitCode: cmd.ProcessState.ExitCode()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, ctxErr
	}

	var exitErr *exec.ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		return out, err
	}
	return out, nil
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	RunFunc      func(ctx context.Context, name string, args ...string) (Output, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// Run calls the mock function
func (m *MockExecutor) Run(ctx context.Context, name string, args ...string) (Output, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return Output{}, nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/sbin/" + file, nil
}
