// Package cli provides the Cobra command tree and output wiring for fwver.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tbckr/fwver/internal/config"
	"github.com/tbckr/fwver/internal/describe"
	"github.com/tbckr/fwver/internal/version"
)

type rootOptions struct {
	runner describe.Runner
}

// Option customizes the root command.
type Option func(*rootOptions)

// WithRunner replaces the runner used for git invocations.
func WithRunner(r describe.Runner) Option {
	return func(o *rootOptions) {
		o.runner = r
	}
}

// NewRootCmd builds the top-level Cobra command for fwver.
// Callers set stdin/stdout/stderr via cmd.SetIn / SetOut / SetErr before Execute.
func NewRootCmd(opts ...Option) *cobra.Command {
	var o rootOptions
	for _, opt := range opts {
		opt(&o)
	}

	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// Cobra only executes the innermost PersistentPreRunE in the command
	// chain; a subcommand defining its own hook leaves d zero-valued.
	var d deps

	cmd := &cobra.Command{
		Use:   "fwver",
		Short: "fwver derives a firmware version from git and emits it as a compile-time define",
		Long: `fwver runs "git describe --tags --always", strips the leading "v" and
exposes the result as a compile-time symbol (FIRMWARE_VERSION by default).

When git metadata is unavailable the version falls back to "dev", so a build
never fails for lack of tags or a missing .git directory.

Settings are read from flags, FWVER_* environment variables and
$XDG_CONFIG_HOME/fwver/config.yaml, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr(), o.runner)
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	config.RegisterFlagCompletions(cmd)

	cmd.Version = version.Get().String()
	cmd.SetVersionTemplate("fwver version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "version", Title: "Version Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newDescribeCmd(&d),
		newDefineCmd(&d),
		newHeaderCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	return cmd
}
