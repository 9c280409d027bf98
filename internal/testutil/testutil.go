// Package testutil provides shared test helpers for fwver's packages.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/tbckr/fwver/internal/describe"
)

// Call records one invocation of FakeRunner.Run.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// FakeRunner implements describe.Runner for testing.
// RunFn decides the outcome; when nil, Run returns Output and Err.
type FakeRunner struct {
	RunFn  func(ctx context.Context, dir, name string, args ...string) (string, error)
	Output string
	Err    error

	mu    sync.Mutex
	calls []Call
}

var _ describe.Runner = (*FakeRunner)(nil)

// Run implements describe.Runner.
func (f *FakeRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Dir: dir, Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.RunFn != nil {
		return f.RunFn(ctx, dir, name, args...)
	}
	return f.Output, f.Err
}

// Calls returns a copy of the recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
