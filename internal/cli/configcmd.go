package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vladjdk/gym-counter/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	cmd.AddCommand(newConfigInitCommand(rootOpts))
	return cmd
}

func configPath(opts *RootOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return config.Path()
}

func newConfigShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config file          %s\n", configPath(opts))
			fmt.Fprintf(out, "database.path        %s\n", cfg.Database.Path)
			fmt.Fprintf(out, "ui.timezone          %s\n", cfg.UI.Timezone)
			fmt.Fprintf(out, "ui.default_category  %s\n", cfg.UI.DefaultCategory)
			fmt.Fprintf(out, "ui.months_back       %d\n", cfg.UI.MonthsBack)
			fmt.Fprintf(out, "ui.months_forward    %d\n", cfg.UI.MonthsForward)
			fmt.Fprintf(out, "ui.week_start        %s\n", cfg.UI.WeekStart)
			fmt.Fprintf(out, "log.path             %s\n", cfg.Log.Path)
			fmt.Fprintf(out, "log.level            %s\n", cfg.Log.Level)
			return nil
		},
	}
}

func newConfigInitCommand(opts *RootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the effective configuration to the config file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(opts)
			if _, err := os.Stat(path); err == nil && !force {
				return NewExitError(ExitCommandError, fmt.Sprintf("%s already exists; pass --force to overwrite", path))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return WrapExitError(ExitCommandError, "stat config", err)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return WrapExitError(ExitCommandError, "save config", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s.\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
