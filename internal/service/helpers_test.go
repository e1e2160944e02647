package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/domain"
)

func newTestStore(t *testing.T) (*WorkoutStore, *repository.WorkoutRepo, *sql.DB) {
	t.Helper()
	db, err := database.Setup(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewWorkoutRepo(db)
	store := NewWorkoutStore(repo)
	require.NoError(t, store.Load(context.Background()))
	return store, repo, db
}

func day(s string) domain.Day { return domain.MustParseDay(s) }

// failingRepo fails every call with err.
type failingRepo struct {
	err   error
	calls int
}

func (f *failingRepo) List(context.Context, repository.WorkoutFilter) ([]domain.Workout, error) {
	f.calls++
	return nil, &repository.StorageError{Op: "list workouts", Kind: repository.KindRead, Err: f.err}
}

func (f *failingRepo) Insert(context.Context, domain.Workout) error {
	f.calls++
	return &repository.StorageError{Op: "insert workout", Kind: repository.KindWrite, Err: f.err}
}

func (f *failingRepo) Upsert(context.Context, domain.Workout) (domain.Workout, error) {
	f.calls++
	return domain.Workout{}, &repository.StorageError{Op: "upsert workout", Kind: repository.KindWrite, Err: f.err}
}

func (f *failingRepo) DeleteByDay(context.Context, domain.Day) (int64, error) {
	f.calls++
	return 0, &repository.StorageError{Op: "delete workout", Kind: repository.KindWrite, Err: f.err}
}

var errDiskGone = errors.New("disk gone")
