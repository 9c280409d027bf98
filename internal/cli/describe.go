package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/tbckr/fwver/internal/apperr"
	"github.com/tbckr/fwver/internal/describe"
	"github.com/tbckr/fwver/internal/input"
	"github.com/tbckr/fwver/internal/output"
	"github.com/tbckr/fwver/internal/worker"
)

func newDescribeCmd(d *deps) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "describe [dir...]",
		Short: "Print the firmware version of one or more repositories",
		Long: `Print the firmware version derived from git describe.

With no arguments the current directory is described. Pass "-" to read
repository paths from stdin, one per line. Several repositories are described
in parallel (see --concurrency) and reported in input order.`,
		Example: `  fwver describe
  fwver describe firmware/ bootloader/ -o json
  cat repos.txt | fwver describe - --strict`,
		GroupID: "version",
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, err := resolveDirs(cmd, args)
			if err != nil {
				return err
			}

			results := describeAll(cmd.Context(), d, dirs)
			if err := writeResult(cmd.OutOrStdout(), d, describeReport(results)); err != nil {
				return err
			}
			if strict {
				return strictError(results)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a repository falls back to the sentinel")

	return cmd
}

// resolveDirs returns args, "." when empty, or the paths read from stdin
// when args is exactly "-". "-" mixed with paths is rejected.
func resolveDirs(cmd *cobra.Command, args []string) ([]string, error) {
	switch {
	case len(args) == 0:
		return []string{"."}, nil
	case len(args) > 1 && slices.Contains(args, "-"):
		return nil, fmt.Errorf("%w: \"-\" reads paths from stdin and cannot be combined with other arguments", apperr.ErrInvalidInput)
	case len(args) == 1 && args[0] == "-":
		dirs, err := input.Read(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if len(dirs) == 0 {
			return nil, fmt.Errorf("%w: no repository paths on stdin", apperr.ErrInvalidInput)
		}
		return dirs, nil
	}
	return args, nil
}

// describeAll describes dirs through the worker pool; the describer never
// fails, so every result carries a version.
func describeAll(ctx context.Context, d *deps, dirs []string) []describe.Result {
	jobs := worker.Run(ctx, dirs, d.cfg.Concurrency, func(ctx context.Context, dir string) (describe.Result, error) {
		return d.describer.Describe(ctx, dir), nil
	})

	results := make([]describe.Result, len(jobs))
	for i, j := range jobs {
		results[i] = j.Output
		if j.Err != nil {
			// Cancelled before the job started.
			results[i] = describe.Result{
				Dir:     j.Input,
				Version: d.describer.Options().Sentinel,
				Source:  describe.SourceFallback,
				Err:     j.Err,
			}
		}
	}
	return results
}

// strictError aggregates every fallback into one error.
func strictError(results []describe.Result) error {
	var merr *multierror.Error
	for _, r := range results {
		if r.Fallback() {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w: %w", r.Dir, apperr.ErrFallback, r.Err))
		}
	}
	return merr.ErrorOrNil()
}

// describeReport renders one result as a bare version and many as a table.
type describeReport []describe.Result

func (r describeReport) WriteText(w io.Writer) error {
	if len(r) == 1 {
		_, err := fmt.Fprintln(w, output.Sanitize(r[0].Version))
		return err
	}
	table := output.NewWrappingTable(w, 20, 30)
	table.Header([]string{"DIR", "VERSION", "SOURCE"})
	rows := make([][]string, len(r))
	for i, res := range r {
		rows[i] = []string{output.Sanitize(res.Dir), output.Sanitize(res.Version), string(res.Source)}
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (r describeReport) WritePlain(w io.Writer) error {
	if len(r) == 1 {
		_, err := fmt.Fprintln(w, output.Sanitize(r[0].Version))
		return err
	}
	for _, res := range r {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", output.Sanitize(res.Dir), output.Sanitize(res.Version)); err != nil {
			return err
		}
	}
	return nil
}

type jsonResult struct {
	describe.Result
	Error string `json:"error,omitempty"`
}

func (r describeReport) MarshalJSON() ([]byte, error) {
	out := make([]jsonResult, len(r))
	for i, res := range r {
		out[i] = jsonResult{Result: res}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	if len(out) == 1 {
		return json.Marshal(out[0])
	}
	return json.Marshal(out)
}
