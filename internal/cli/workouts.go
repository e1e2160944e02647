package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/domain"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	From   string
	To     string
	Format string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workouts ordered by day",
		Example: `  gymcounter list
  gymcounter list --from 2025-01-01 --to 2025-01-31 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Format, "format", FormatText, "output format (text|json)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	if err := validateFormat(opts.Format, FormatText, FormatJSON); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	e, err := opts.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	var filter repository.WorkoutFilter
	if opts.From != "" {
		if filter.From, err = parseDayArg(opts.From, e.today()); err != nil {
			return err
		}
	}
	if opts.To != "" {
		if filter.To, err = parseDayArg(opts.To, e.today()); err != nil {
			return err
		}
	}

	var list []domain.Workout
	if filter == (repository.WorkoutFilter{}) {
		list, err = e.store.List(ctx)
	} else {
		list, err = e.repo.List(ctx, filter)
	}
	if err != nil {
		return storageExit("list workouts", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == FormatJSON {
		if list == nil {
			list = []domain.Workout{}
		}
		return writeJSON(out, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No workouts recorded.")
		return nil
	}
	fmt.Fprintln(out, workoutTable(list))
	return nil
}

func workoutTable(list []domain.Workout) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DAY", "CATEGORY", "TITLE", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style { return cell })
	for _, w := range list {
		t.Row(w.Day.String(), w.Category.Label(), w.Title, oneLine(w.Description))
	}
	return t.String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Format string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show <day>",
		Short:         "Show the workout recorded for a day",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", FormatText, "output format (text|json)")
	return cmd
}

func runShow(opts *ShowOptions, arg string, cmd *cobra.Command) error {
	if err := validateFormat(opts.Format, FormatText, FormatJSON); err != nil {
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

	day, err := parseDayArg(arg, e.today())
	if err != nil {
		return err
	}
	w, ok := e.store.FindByDay(day)
	out := cmd.OutOrStdout()
	if opts.Format == FormatJSON {
		if !ok {
			return writeJSON(out, nil)
		}
		return writeJSON(out, w)
	}
	if !ok {
		fmt.Fprintf(out, "No workout on %s.\n", day)
		return nil
	}
	printWorkout(out, w)
	return nil
}

func printWorkout(out io.Writer, w domain.Workout) {
	fmt.Fprintf(out, "%s  %s\n", w.Day.Time(nil).Format("Mon 2 Jan 2006"), w.Category.Label())
	if w.Title != "" {
		fmt.Fprintf(out, "  %s\n", w.Title)
	}
	if w.Description != "" {
		for _, line := range strings.Split(w.Description, "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
}

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Title       string
	Description string
	Category    string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log <day>",
		Short: "Record the workout for a day, replacing any existing one",
		Example: `  gymcounter log today --title "Push Day" --category chest-triceps
  gymcounter log 2025-01-12 -t "Leg Day" -d "squats, lunges" -c legs`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "workout title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "free-text notes")
	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "category (default ui.default_category)")
	return cmd
}

func runLog(opts *LogOptions, arg string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	e, err := opts.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	day, err := parseDayArg(arg, e.today())
	if err != nil {
		return err
	}
	cat, err := e.cfg.DefaultCategory()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Category != "" {
		if cat, err = domain.ParseCategory(opts.Category); err != nil {
			return WrapExitError(ExitCommandError, "invalid category", err)
		}
	}

	w, err := e.store.Upsert(ctx, domain.Draft{
		Title:       strings.TrimSpace(opts.Title),
		Description: strings.TrimSpace(opts.Description),
		Category:    cat,
		Day:         day,
	})
	if err != nil {
		return storageExit("save workout", err)
	}
	e.log.Info("workout saved", "day", w.Day, "category", w.Category, "id", w.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s.\n", w.Category.Label(), w.Day)
	return nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <day>",
		Short:         "Delete the workout recorded for a day",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
}

func runDelete(opts *RootOptions, arg string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	e, err := opts.open(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	day, err := parseDayArg(arg, e.today())
	if err != nil {
		return err
	}
	n, err := e.store.DeleteByDay(ctx, day)
	if err != nil {
		return storageExit("delete workout", err)
	}
	if n == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No workout on %s.\n", day)
		return nil
	}
	e.log.Info("workout deleted", "day", day, "rows", n)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout on %s.\n", day)
	return nil
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show workout totals per category",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.open(commandContext(cmd), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.loaded(); err != nil {
				return err
			}

			st := e.store.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total Workouts: %d\n", st.Total)
			for _, c := range domain.Categories() {
				fmt.Fprintf(out, "  %-16s %d\n", c.Label(), st.ByCategory[c])
			}
			return nil
		},
	}
}
