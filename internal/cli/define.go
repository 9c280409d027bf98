package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tbckr/fwver/internal/define"
	"github.com/tbckr/fwver/internal/describe"
	"github.com/tbckr/fwver/internal/output"
)

func newDefineCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "define [dir]",
		Short: "Print the firmware version as a compile-time definition",
		Long: `Print the firmware version as a compile-time definition.

Formats (--format):
  cflag    -DFIRMWARE_VERSION=\"1.2.3\", for build_flags and CFLAGS
  header   a C header with #define FIRMWARE_VERSION "1.2.3"
  ldflags  -X <symbol>=1.2.3, for go build -ldflags (requires --symbol)
  env      FIRMWARE_VERSION=1.2.3`,
		Example: `  # platformio.ini
  build_flags = !fwver define

  go build -ldflags "$(fwver define -f ldflags --symbol main.version)"`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "version",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			res := d.describer.Describe(cmd.Context(), dir)
			def, err := define.New(d.cfg.Macro, res.Version)
			if err != nil {
				return err
			}
			rendered, err := def.Render(d.define, d.cfg.Symbol)
			if err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), d, defineReport{
				Define:   def,
				Format:   d.define,
				Source:   res.Source,
				Rendered: rendered,
			})
		},
	}
}

// defineReport is the rendered definition. Text and plain print it verbatim
// so build tools can consume stdout directly.
type defineReport struct {
	define.Define
	Format   define.Format   `json:"format"`
	Source   describe.Source `json:"source"`
	Rendered string          `json:"rendered"`
}

var _ output.TextFormattable = defineReport{}

func (r defineReport) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, r.Rendered)
	return err
}

func (r defineReport) WritePlain(w io.Writer) error {
	return r.WriteText(w)
}

func newHeaderCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "header <path> [dir]",
		Short: "Write the firmware version to a C header, only when it changed",
		Long: `Write a C header defining the firmware version.

The file is rewritten only when its contents change, so an unchanged version
does not invalidate the build.`,
		Example: `  fwver header include/firmware_version.h`,
		Args:    cobra.RangeArgs(1, 2),
		GroupID: "version",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}

			res := d.describer.Describe(cmd.Context(), dir)
			def, err := define.New(d.cfg.Macro, res.Version)
			if err != nil {
				return err
			}

			written, err := define.WriteFile(path, []byte(def.Header()))
			if err != nil {
				return fmt.Errorf("writing header: %w", err)
			}
			if written {
				d.logger.Info("header updated", "path", path, "version", res.Version)
			} else {
				d.logger.Debug("header unchanged", "path", path, "version", res.Version)
			}

			return writeResult(cmd.OutOrStdout(), d, headerReport{
				Path:    path,
				Version: res.Version,
				Source:  res.Source,
				Written: written,
			})
		},
	}
}

type headerReport struct {
	Path    string          `json:"path"`
	Version string          `json:"version"`
	Source  describe.Source `json:"source"`
	Written bool            `json:"written"`
}

func (r headerReport) WriteText(w io.Writer) error {
	state := "unchanged"
	if r.Written {
		state = "written"
	}
	_, err := fmt.Fprintf(w, "%s: %s (%s)\n", r.Path, output.Sanitize(r.Version), state)
	return err
}

func (r headerReport) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Path)
	return err
}
