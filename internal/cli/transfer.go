package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladjdk/gym-counter/internal/service"
)

const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Format string
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every workout as CSV or YAML",
		Example: `  gymcounter export > workouts.csv
  gymcounter export --format yaml -o workouts.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", FormatCSV, "export format (csv|yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	if err := validateFormat(opts.Format, FormatCSV, FormatYAML); err != nil {
		return err
	}
	e, err := opts.open(commandContext(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.loaded(); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "create output", err)
		}
		defer f.Close()
		w = f
	}

	svc := &service.TransferService{Store: e.store}
	if opts.Format == FormatYAML {
		err = svc.ExportYAML(w)
	} else {
		err = svc.ExportCSV(w)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "export", err)
	}
	e.log.Info("exported workouts", "count", e.store.Count(), "format", opts.Format, "output", opts.Output)
	return nil
}

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Format  string
	Replace bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load workouts from a CSV or YAML export",
		Long: `Load workouts from a CSV (day,category,title,description) or YAML
export. Days that already have a workout are skipped unless --replace is
given. Categories may be slugs, labels or close misspellings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "input format (csv|yaml, default from extension)")
	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "overwrite days that already have a workout")
	return cmd
}

func importFormat(path, flag string) string {
	if flag != "" {
		return flag
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatCSV
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	format := importFormat(path, opts.Format)
	if err := validateFormat(format, FormatCSV, FormatYAML); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open input", err)
	}
	defer f.Close()

	ctx := commandContext(cmd)
	e, err := opts.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.loaded(); err != nil {
		return err
	}

	svc := &service.TransferService{Store: e.store}
	importOpts := service.ImportOptions{Replace: opts.Replace}
	var res service.ImportResult
	if format == FormatYAML {
		res, err = svc.ImportYAML(ctx, f, importOpts)
	} else {
		res, err = svc.ImportCSV(ctx, f, importOpts)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "import", err)
	}

	for _, rowErr := range res.Errors {
		e.log.Warn("import row rejected", "file", filepath.Base(path), "err", rowErr)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported %d, replaced %d, skipped %d", res.Imported, res.Replaced, res.Skipped)
	if len(res.Errors) > 0 {
		fmt.Fprintf(out, ", errors %d", len(res.Errors))
	}
	fmt.Fprintln(out)
	if len(res.Errors) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d rows could not be imported", len(res.Errors)))
	}
	return nil
}
