// Package validator runs nginx's configuration test and reports whether the
// materialized site configurations are acceptable to nginx.
//
// A failing test is a normal outcome and comes back as a ValidationResult
// with Success false. Check only returns an error when nginx could not be
// run to completion: SPAWN when the binary cannot be launched, TIMEOUT when
// it was killed after the configured timeout and CANCELED when the caller's
// context ended first.
package validator

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/ksyq12/nginxtools/internal/errors"
	"github.com/ksyq12/nginxtools/internal/executor"
	"github.com/ksyq12/nginxtools/internal/site"
)

// DefaultBinary is the nginx executable looked up in PATH.
const DefaultBinary = "nginx"

// DefaultTimeout bounds a single nginx -t run.
const DefaultTimeout = 30 * time.Second

// testArgs asks nginx to test the configuration and exit.
var testArgs = []string{"-t"}

// Checker validates the current configuration set.
type Checker interface {
	Check(ctx context.Context) (site.ValidationResult, error)
}

// Validator runs `nginx -t` through a CommandExecutor.
type Validator struct {
	exec    executor.CommandExecutor
	binary  string
	timeout time.Duration
}

// Option configures a Validator.
type Option func(*Validator)

// WithBinary sets the nginx executable name or path.
func WithBinary(binary string) Option {
	return func(v *Validator) {
		if binary != "" {
			v.binary = binary
		}
	}
}

// WithTimeout sets how long a check may run before nginx is killed.
// Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) {
		v.timeout = d
	}
}

// New creates a Validator. A nil exec uses the system executor.
func New(exec executor.CommandExecutor, opts ...Option) *Validator {
	if exec == nil {
		exec = executor.NewSystemExecutor()
	}
	v := &Validator{
		exec:    exec,
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}


// Check runs the configuration test once and waits for it to exit.
func (v *Validator) Check(ctx context.Context) (site.ValidationResult, error) {
	runCtx := ctx
	if v.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	out, err := v.exec.Run(runCtx, v.binary, testArgs...)
	if err != nil {
		return site.ValidationResult{}, v.classify(ctx, err)
	}

	return site.ValidationResult{
		Success:  out.ExitCode == 0,
		ExitCode: out.ExitCode,
		Output:   string(out.Combined),
	}, nil
}

func (v *Validator) classify(ctx context.Context, err error) error {
	var startErr *executor.StartError
	switch {
	case stderrors.As(err, &startErr):
		return errors.Wrap(errors.ErrCodeSpawn, "could not launch "+v.binary, startErr.Err)
	case stderrors.Is(err, context.Canceled) && ctx.Err() != nil:
		return errors.Wrap(errors.ErrCodeCanceled, v.binary+" -t was canceled and killed", err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, fmt.Sprintf("%s -t did not finish within %s and was killed", v.binary, v.timeout), err)
	default:
		return errors.Wrap(errors.ErrCodeIO, v.binary+" -t failed", err)
	}
}
