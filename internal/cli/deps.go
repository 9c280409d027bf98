package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tbckr/fwver/internal/config"
	"github.com/tbckr/fwver/internal/define"
	"github.com/tbckr/fwver/internal/describe"
	"github.com/tbckr/fwver/internal/output"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger    *slog.Logger
	cfg       *config.Config
	format    output.Format
	define    define.Format
	describer *describe.Describer
}

// buildDeps resolves config, logger, output format and the describer.
// runner replaces the git exec runner when non-nil.
func buildDeps(cmd *cobra.Command, stderr io.Writer, runner describe.Runner) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("--concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	if cfg.Abbrev < 0 {
		return nil, fmt.Errorf("--abbrev must not be negative, got %d", cfg.Abbrev)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("--timeout must be positive, got %s", cfg.Timeout)
	}
	if err := define.ValidateName(cfg.Macro); err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}
	defineFormat, err := define.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if runner == nil {
		runner = &describe.ExecRunner{Timeout: cfg.Timeout, Logger: logger}
	}
	describer := describe.New(runner, describe.Options{
		Git:         cfg.Git,
		Prefix:      cfg.Prefix,
		NoPrefix:    cfg.NoPrefix,
		Sentinel:    cfg.Sentinel,
		Override:    cfg.Override,
		Match:       cfg.Match,
		Abbrev:      cfg.Abbrev,
		Dirty:       cfg.Dirty,
		FirstParent: cfg.FirstParent,
	}, logger)

	logger.Debug("configuration resolved",
		"config_file", cfg.ConfigFile,
		"output", format,
		"format", defineFormat,
		"macro", cfg.Macro,
		"concurrency", cfg.Concurrency,
		"override", cfg.Override != "",
	)

	return &deps{
		logger:    logger,
		cfg:       cfg,
		format:    format,
		define:    defineFormat,
		describer: describer,
	}, nil
}

// writeResult formats and writes a result to stdout.
func writeResult(stdout io.Writer, d *deps, result any) error {
	if err := output.Write(stdout, d.format, result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
