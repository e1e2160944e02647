package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/logging"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB       *sql.DB
	Workouts *repository.WorkoutRepo
	Store    *WorkoutStore
	Log      *slog.Logger
}

// Reset wipes every workout. It keeps the schema intact so the app can
// continue running, and reloads the store so the snapshot is empty too.
func (s *MaintenanceService) Reset(ctx context.Context) (int64, error) {
	if s.DB == nil || s.Workouts == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var removed int64
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		n, err := s.Workouts.DeleteAll(ctx, tx)
		removed = n
		return err
	}); err != nil {
		return 0, err
	}
	// the rows are gone either way; a failed VACUUM only leaves the file large
	if _, err := s.DB.ExecContext(ctx, "VACUUM"); err != nil {
		s.logger().Warn("vacuum after reset", "err", err)
	} else {
		s.logger().Debug("vacuumed after reset", "removed", removed)
	}
	if s.Store != nil {
		if err := s.Store.Load(ctx); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func (s *MaintenanceService) logger() *slog.Logger {
	if s.Log == nil {
		return logging.Discard()
	}
	return s.Log
}
