package describe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an external command in dir and returns its stdout.
// ExecRunner is the production implementation; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// CmdError describes a failed command invocation.
type CmdError struct {
	Args   string
	Stderr string
	Cause  error
}

func (ce *CmdError) Error() string {
	res := fmt.Sprintf("`%v` failed: %v", ce.Args, ce.Cause)
	if ce.Stderr != "" {
		res = fmt.Sprintf("%s: %s", res, ce.Stderr)
	}
	return res
}

func (ce *CmdError) Unwrap() error {
	return ce.Cause
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each invocation. Zero means no limit beyond ctx.
	Timeout time.Duration
	Logger  *slog.Logger
}

var _ Runner = (*ExecRunner)(nil)

// Run starts name with args in dir and waits for it to exit. On failure the
// returned *CmdError carries the trimmed stderr.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	parent := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // name is the configured git binary
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// log in a way we can copy-and-paste into a terminal
	line := strings.Join(cmd.Args, " ")
	logger := r.logger()
	logger.Debug(line, "dir", dir)

	start := time.Now()
	err := cmd.Run()
	logger.Debug("command finished", "duration", time.Since(start))

	if err != nil {
		cause := err
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = ctxErr
			// Only the runner's own deadline is reported as a timeout.
			if errors.Is(ctxErr, context.DeadlineExceeded) && parent.Err() == nil {
				cause = fmt.Errorf("timeout after %v: %w", r.Timeout, ctxErr)
			}
		}
		return strings.TrimSuffix(stdout.String(), "\n"), &CmdError{
			Args:   line,
			Stderr: strings.TrimSpace(stderr.String()),
			Cause:  cause,
		}
	}

	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

func (r *ExecRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
