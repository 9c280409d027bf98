// Package describe derives a firmware version string from git metadata.
//
// The version is the output of `git describe --tags --always` with the
// leading version prefix removed. Any failure of the query yields the
// sentinel version instead of an error, so a build never stops because
// version-control metadata is missing.
package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tbckr/fwver/internal/apperr"
)

// DefaultSentinel is the version used when no real metadata is available.
const DefaultSentinel = "dev"

// DefaultGit is the git binary looked up on PATH.
const DefaultGit = "git"

// Source records where a version string came from.
type Source string

// Version sources.
const (
	SourceTag      Source = "tag"
	SourceCommit   Source = "commit"
	SourceOverride Source = "override"
	SourceFallback Source = "fallback"
)

// Options configures the describe query. The zero value reproduces
// `git describe --tags --always` with prefix "v" and sentinel "dev".
type Options struct {
	Git         string
	Prefix      string
	Sentinel    string
	Override    string
	Match       []string
	Abbrev      int
	Dirty       bool
	FirstParent bool
	// NoPrefix disables prefix stripping even when Prefix is empty.
	NoPrefix bool
}

// Result is the outcome of a single describe.
type Result struct {
	Dir         string      `json:"dir"`
	Version     string      `json:"version"`
	Raw         string      `json:"raw,omitempty"`
	Source      Source      `json:"source"`
	Description Description `json:"description"`
	// Err is the query failure that led to the fallback, if any.
	Err error `json:"-"`
}

// Fallback reports whether the sentinel was substituted.
func (r Result) Fallback() bool {
	return r.Source == SourceFallback
}

// Describer runs the describe query through a Runner.
type Describer struct {
	runner Runner
	opts   Options
	logger *slog.Logger
}

// New returns a Describer with defaults applied to opts. A nil logger means
// slog.Default.
func New(runner Runner, opts Options, logger *slog.Logger) *Describer {
	if opts.Git == "" {
		opts.Git = DefaultGit
	}
	if opts.Prefix == "" && !opts.NoPrefix {
		opts.Prefix = DefaultPrefix
	}
	if opts.NoPrefix {
		opts.Prefix = ""
	}
	if opts.Sentinel = Normalize(opts.Sentinel, opts.Prefix); opts.Sentinel == "" {
		opts.Sentinel = DefaultSentinel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Describer{runner: runner, opts: opts, logger: logger}
}

// Options returns the effective options after defaults were applied.
func (d *Describer) Options() Options {
	return d.opts
}

// Args returns the git arguments used for the query.
func (d *Describer) Args() []string {
	args := []string{"describe", "--tags", "--always"}
	if d.opts.Dirty {
		args = append(args, "--dirty")
	}
	if d.opts.FirstParent {
		args = append(args, "--first-parent")
	}
	if d.opts.Abbrev > 0 {
		args = append(args, "--abbrev="+strconv.Itoa(d.opts.Abbrev))
	}
	for _, m := range d.opts.Match {
		args = append(args, "--match", m)
	}
	return args
}

// Describe resolves the version for the repository at dir. It never fails:
// query errors are logged and recorded in Result.Err, and the sentinel is
// returned as the version.
func (d *Describer) Describe(ctx context.Context, dir string) Result {
	if d.opts.Override != "" {
		if v := Normalize(d.opts.Override, d.opts.Prefix); v != "" {
			d.logger.Debug("using version override", "dir", dir, "version", v)
			return Result{
				Dir:         dir,
				Version:     v,
				Raw:         d.opts.Override,
				Source:      SourceOverride,
				Description: Parse(d.opts.Override),
			}
		}
	}

	out, err := d.runner.Run(ctx, dir, d.opts.Git, d.Args()...)
	if err != nil {
		return d.fallback(dir, out, fmt.Errorf("%w: %w", apperr.ErrQueryFailed, err))
	}

	v := Normalize(out, d.opts.Prefix)
	if v == "" {
		return d.fallback(dir, out, fmt.Errorf("%w: empty output", apperr.ErrQueryFailed))
	}

	desc := Parse(out)
	source := SourceTag
	if desc.Tag == "" {
		source = SourceCommit
	}
	d.logger.Debug("resolved version", "dir", dir, "version", v, "source", source)

	return Result{
		Dir:         dir,
		Version:     v,
		Raw:         out,
		Source:      source,
		Description: desc,
	}
}

func (d *Describer) fallback(dir, raw string, err error) Result {
	d.logger.Warn("version query failed, using sentinel",
		"dir", dir,
		"sentinel", d.opts.Sentinel,
		"error", err,
	)
	return Result{
		Dir:     dir,
		Version: d.opts.Sentinel,
		Raw:     raw,
		Source:  SourceFallback,
		Err:     err,
	}
}
