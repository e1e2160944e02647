package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladjdk/gym-counter/internal/sample"
	"github.com/vladjdk/gym-counter/internal/service"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	Yes bool
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "reset",
		Short:         "Delete every workout",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				return NewExitError(ExitCommandError, "reset deletes every workout; pass --yes to confirm")
			}
			ctx := commandContext(cmd)
			e, err := opts.open(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			svc := &service.MaintenanceService{DB: e.db, Workouts: e.repo, Store: e.store, Log: e.log}
			n, err := svc.Reset(ctx)
			if err != nil {
				return storageExit("reset", err)
			}
			e.log.Info("database reset", "removed", n)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d workouts.\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm deleting every workout")
	return cmd
}

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	From  string
	Count int
	Seed  int64
}

// NewSeedCommand creates the seed command, which fills an empty database
// with sample workouts for trying out the calendar.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Insert sample workouts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Count <= 0 {
				return NewExitError(ExitCommandError, "--count must be positive")
			}
			ctx := commandContext(cmd)
			e, err := opts.open(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			start := e.today().AddMonths(-2)
			if opts.From != "" {
				if start, err = parseDayArg(opts.From, e.today()); err != nil {
					return err
				}
			}
			if err := e.loaded(); err != nil {
				return err
			}
			if e.store.Count() > 0 {
				return NewExitError(ExitCommandError, "database already has workouts; run reset first")
			}
			seeded, err := sample.Seed(ctx, e.store, start, opts.Count, opts.Seed)
			if err != nil {
				return storageExit("seed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d workouts from %s.\n", len(seeded), start)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "first sample day (default two months ago)")
	cmd.Flags().IntVar(&opts.Count, "count", 30, "number of workouts")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed")
	return cmd
}
