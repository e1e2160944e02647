package binder

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/domain"
	"github.com/vladjdk/gym-counter/internal/sample"
	"github.com/vladjdk/gym-counter/internal/service"
)

func newTestBinder(t *testing.T) (*Binder, *service.WorkoutStore) {
	t.Helper()
	db, err := database.Setup(filepath.Join(t.TempDir(), "binder.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := service.NewWorkoutStore(repository.NewWorkoutRepo(db))
	require.NoError(t, store.Load(context.Background()))
	return New(store, DefaultOptions()), store
}

func day(s string) domain.Day { return domain.MustParseDay(s) }

// brokenStore serves reads from a fixed map and fails every write.
type brokenStore struct {
	days   map[domain.Day]domain.Workout
	writes int
}

var errWrite = errors.New("read-only filesystem")

func (s *brokenStore) FindByDay(d domain.Day) (domain.Workout, bool) {
	w, ok := s.days[d]
	return w, ok
}

func (s *brokenStore) Upsert(context.Context, domain.Draft) (domain.Workout, error) {
	s.writes++
	return domain.Workout{}, &repository.StorageError{Op: "upsert workout", Kind: repository.KindWrite, Err: errWrite}
}

func (s *brokenStore) DeleteByDay(context.Context, domain.Day) (int64, error) {
	s.writes++
	return 0, &repository.StorageError{Op: "delete workout", Kind: repository.KindWrite, Err: errWrite}
}

func (s *brokenStore) Count() int { return len(s.days) }

func TestTapOpensWithDefaults(t *testing.T) {
	t.Parallel()
	b, _ := newTestBinder(t)

	require.False(t, b.IsOpen())
	require.True(t, b.Tap(day("2025-01-10")))
	require.True(t, b.IsOpen())
	assert.False(t, b.HasExisting())

	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, day("2025-01-10"), sel)
	assert.Equal(t, domain.Draft{Category: domain.ChestTriceps, Day: sel}, b.Buffer())
}

func TestTapPrefillsFromStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, store := newTestBinder(t)
	w, err := store.Insert(ctx, domain.Draft{Title: "Legs", Description: "squat", Category: domain.Legs, Day: day("2025-02-02")})
	require.NoError(t, err)

	require.True(t, b.Tap(day("2025-02-02")))
	assert.True(t, b.HasExisting())
	assert.Equal(t, w.Draft(), b.Buffer())
}

func TestTapWhileOpenIsIgnored(t *testing.T) {
	t.Parallel()
	b, _ := newTestBinder(t)

	require.True(t, b.Tap(day("2025-01-10")))
	b.SetTitle("typing")
	assert.False(t, b.Tap(day("2025-01-11")))

	sel, _ := b.Selected()
	assert.Equal(t, day("2025-01-10"), sel)
	assert.Equal(t, "typing", b.Buffer().Title)
}

func TestSaveUpsertsAndResets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, store := newTestBinder(t)
	d := day("2025-01-10")

	require.True(t, b.Tap(d))
	b.SetTitle("Push Day")
	b.SetCategory(domain.Shoulders)
	first, err := b.Save(ctx)
	require.NoError(t, err)
	assert.False(t, b.IsOpen())
	assert.Equal(t, domain.Draft{Category: domain.ChestTriceps}, b.Buffer())

	// edit the same day again: replaced in place, one record
	require.True(t, b.Tap(d))
	assert.Equal(t, "Push Day", b.Buffer().Title)
	b.SetTitle("Push Day 2")
	b.SetDescription("bench 5x5")
	assert.Equal(t, domain.Legs, b.CycleCategory(1))
	second, err := b.Save(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.Count())
	got, ok := store.FindByDay(d)
	require.True(t, ok)
	assert.Equal(t, "Push Day 2", got.Title)
	assert.Equal(t, "bench 5x5", got.Description)
	assert.Equal(t, domain.Legs, got.Category)
}

func TestDeleteRemovesAndCloses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, store := newTestBinder(t)
	d := day("2025-01-10")
	_, err := store.Insert(ctx, domain.Draft{Title: "x", Category: domain.Other, Day: d})
	require.NoError(t, err)

	require.True(t, b.Tap(d))
	require.NoError(t, b.Delete(ctx))
	assert.False(t, b.IsOpen())
	_, ok := store.FindByDay(d)
	assert.False(t, ok)

	// deleting an empty day is fine
	require.True(t, b.Tap(d))
	require.NoError(t, b.Delete(ctx))
	assert.Zero(t, store.Count())
}

func TestCancelLeavesStorageAlone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, store := newTestBinder(t)
	d := day("2025-01-10")
	orig, err := store.Insert(ctx, domain.Draft{Title: "keep", Category: domain.Other, Day: d})
	require.NoError(t, err)

	require.True(t, b.Tap(d))
	b.SetTitle("discard me")
	b.Cancel()
	assert.False(t, b.IsOpen())

	got, ok := store.FindByDay(d)
	require.True(t, ok)
	assert.Equal(t, orig, got)

	require.True(t, b.Tap(d))
	assert.Equal(t, "keep", b.Buffer().Title)
}

func TestSaveAndDeleteNeedOpenSheet(t *testing.T) {
	t.Parallel()
	b, _ := newTestBinder(t)
	_, err := b.Save(context.Background())
	require.ErrorIs(t, err, ErrSheetClosed)
	require.ErrorIs(t, b.Delete(context.Background()), ErrSheetClosed)
}

func TestFailedWritesKeepSheetOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	d := day("2025-01-10")
	store := &brokenStore{days: map[domain.Day]domain.Workout{
		d: {ID: "w1", Title: "old", Category: domain.Legs, Day: d},
	}}
	b := New(store, DefaultOptions())

	require.True(t, b.Tap(d))
	b.SetTitle("new")
	_, err := b.Save(ctx)
	require.ErrorIs(t, err, errWrite)
	assert.True(t, repository.IsWriteError(err))
	assert.True(t, b.IsOpen())
	assert.Equal(t, "new", b.Buffer().Title)

	err = b.Delete(ctx)
	require.ErrorIs(t, err, errWrite)
	assert.True(t, b.IsOpen())
	assert.Equal(t, 2, store.writes)
}

func TestDecorateVisibleRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b, store := newTestBinder(t)
	today := day("2024-06-15")

	_, err := sample.Seed(ctx, store, day("2024-01-01"), 60, 42)
	require.NoError(t, err)

	from, to := b.VisibleRange(today)
	assert.Equal(t, day("2023-06-15"), from)
	assert.Equal(t, day("2025-06-15"), to)

	cells, marked := 0, 0
	for d := from; !d.After(to); d = d.AddDays(1) {
		cells++
		dec := b.Decorate(d)
		w, ok := store.FindByDay(d)
		require.Equal(t, ok, dec.HasWorkout, d.String())
		if ok {
			marked++
			assert.Equal(t, w.Category.Color(), dec.Color)
			assert.Equal(t, w.Category, dec.Category)
		} else {
			assert.Equal(t, domain.NeutralColor, dec.Color)
		}
		assert.Equal(t, d, dec.Day)
	}
	assert.Equal(t, 732, cells)
	assert.Equal(t, 60, marked)
	assert.Equal(t, 60, b.ChangeToken())

	assert.True(t, b.InRange(today, from))
	assert.False(t, b.InRange(today, to.AddDays(1)))
}

func TestDecorateLabel(t *testing.T) {
	t.Parallel()
	b, _ := newTestBinder(t)
	assert.Equal(t, "7", b.Decorate(day("2025-03-07")).Label)
}

func TestNewSanitizesOptions(t *testing.T) {
	t.Parallel()
	b := New(&brokenStore{}, Options{DefaultCategory: "cardio", MonthsBack: -1, MonthsForward: 2})
	from, to := b.VisibleRange(day("2025-01-31"))
	assert.Equal(t, day("2025-01-31"), from)
	assert.Equal(t, day("2025-03-31"), to)
	assert.Equal(t, domain.ChestTriceps, b.Buffer().Category)
}
