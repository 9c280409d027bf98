package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/fwver/internal/version"
)

func newVersionCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the fwver version",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeResult(cmd.OutOrStdout(), d, versionReport(version.Get()))
		},
	}
}

type versionReport version.Info

func (r versionReport) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "fwver version %s\n", version.Info(r))
	return err
}

func (r versionReport) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Version)
	return err
}
