package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vladjdk/gym-counter/internal/binder"
	"github.com/vladjdk/gym-counter/internal/logging"
	"github.com/vladjdk/gym-counter/internal/tui"
)

// runCalendar opens the interactive calendar. The program owns the
// terminal, so logs go to log.path.
func runCalendar(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := logging.OpenFile(cfg.Log.Path, opts.level(cfg))
	if err != nil {
		return WrapExitError(ExitCommandError, "open log", err)
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	e, err := opts.openWith(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer e.Close()

	weekStart, _ := cfg.WeekStart()
	defaultCat, _ := cfg.DefaultCategory()
	app := tui.New(ctx, e.store, log, tui.Options{
		Location:  e.loc,
		WeekStart: weekStart,
		Binder: binder.Options{
			DefaultCategory: defaultCat,
			MonthsBack:      cfg.UI.MonthsBack,
			MonthsForward:   cfg.UI.MonthsForward,
		},
	})

	log.Info("calendar starting", "db", cfg.Database.Path, "workouts", e.store.Count())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return WrapExitError(ExitFailure, "calendar", err)
	}
	log.Info("calendar stopped")
	return nil
}
