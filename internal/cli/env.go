package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladjdk/gym-counter/internal/config"
	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/domain"
	"github.com/vladjdk/gym-counter/internal/logging"
	"github.com/vladjdk/gym-counter/internal/service"
)

// env is the storage client and settings one command runs against. It is
// built explicitly per command and closed when the command returns.
type env struct {
	cfg   config.Config
	log   *slog.Logger
	loc   *time.Location
	db    *sql.DB
	repo  *repository.WorkoutRepo
	store *service.WorkoutStore

	// loadErr is the failure of the initial snapshot read, if any.
	loadErr error
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig applies the global flags on top of the file and env config.
func (o *RootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "load config", err)
	}
	if o.DBPath != "" {
		cfg.Database.Path = o.DBPath
	}
	return cfg, nil
}

func (o *RootOptions) level(cfg config.Config) slog.Level {
	if o.Verbose {
		return slog.LevelDebug
	}
	lvl, _ := cfg.LogLevel()
	return lvl
}

// open loads config, opens the database and loads the store, logging to w.
func (o *RootOptions) open(ctx context.Context, w io.Writer) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return o.openWith(ctx, cfg, logging.New(w, o.level(cfg)))
}

func (o *RootOptions) openWith(ctx context.Context, cfg config.Config, log *slog.Logger) (*env, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	log.Debug("opening database", "path", cfg.Database.Path)
	db, err := database.Setup(cfg.Database.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}
	repo := repository.NewWorkoutRepo(db)
	store := service.NewWorkoutStore(repo)
	loadErr := store.Load(ctx)
	if loadErr != nil {
		// the calendar keeps going with an empty snapshot; see loaded
		log.Warn("load workouts", "err", loadErr)
	}
	if version, dirty, err := database.SchemaVersion(ctx, db); err != nil {
		log.Warn("read schema version", "err", err)
	} else {
		log.Debug("database ready", "schema", version, "dirty", dirty, "workouts", store.Count())
	}

	return &env{cfg: cfg, log: log, loc: loc, db: db, repo: repo, store: store, loadErr: loadErr}, nil
}

// loaded fails when the initial snapshot read failed. Commands that answer
// from the snapshot call it so an unreadable database is never reported as
// an empty one.
func (e *env) loaded() error {
	if e.loadErr != nil {
		return storageExit("load workouts", e.loadErr)
	}
	return nil
}

func (e *env) Close() error {
	if err := e.db.Close(); err != nil {
		e.log.Error("error closing database", "err", err)
		return err
	}
	return nil
}

func (e *env) today() domain.Day {
	return domain.DayOf(time.Now().In(e.loc))
}

// parseDayArg accepts YYYY-MM-DD, "today" and "yesterday".
func parseDayArg(s string, today domain.Day) (domain.Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	d, err := domain.ParseDay(s)
	if err != nil {
		return domain.Day{}, WrapExitError(ExitCommandError, fmt.Sprintf("invalid day %q", s), err)
	}
	return d, nil
}

// storageExit wraps a store failure for the exit code.
func storageExit(message string, err error) error {
	return WrapExitError(ExitFailure, message, err)
}
