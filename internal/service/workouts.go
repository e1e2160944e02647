package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/database/repository"
	"github.com/vladjdk/gym-counter/internal/domain"
)

// WorkoutRepository is the persistence the store needs.
type WorkoutRepository interface {
	List(ctx context.Context, f repository.WorkoutFilter) ([]domain.Workout, error)
	Insert(ctx context.Context, w domain.Workout) error
	Upsert(ctx context.Context, w domain.Workout) (domain.Workout, error)
	DeleteByDay(ctx context.Context, day domain.Day) (int64, error)
}

// Stats summarises the snapshot for the header view.
type Stats struct {
	Total      int
	ByCategory map[domain.Category]int
}

// WorkoutStore is the record store: an in-memory snapshot of every workout,
// ordered by day, kept in step with the repository on every write.
type WorkoutStore struct {
	repo WorkoutRepository
	now  func() time.Time

	mu    sync.RWMutex
	order []domain.Day
	byDay map[domain.Day]domain.Workout
}

func NewWorkoutStore(repo WorkoutRepository) *WorkoutStore {
	return &WorkoutStore{
		repo:  repo,
		now:   database.Now,
		byDay: map[domain.Day]domain.Workout{},
	}
}

// Load replaces the snapshot with a fresh read of the repository. On error
// the previous snapshot is kept.
func (s *WorkoutStore) Load(ctx context.Context) error {
	list, err := s.repo.List(ctx, repository.WorkoutFilter{})
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order[:0]
	clear(s.byDay)
	for _, w := range list {
		if _, dup := s.byDay[w.Day]; !dup {
			s.order = append(s.order, w.Day)
		}
		s.byDay[w.Day] = w
	}
	slices.SortFunc(s.order, domain.Day.Compare)
	return nil
}

// List re-reads the repository and returns every workout ordered by day.
// On error it returns nil and the storage error; the snapshot is unchanged.
func (s *WorkoutStore) List(ctx context.Context) ([]domain.Workout, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s.Snapshot(), nil
}

// Snapshot returns a copy of the in-memory workouts ordered by day.
func (s *WorkoutStore) Snapshot() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Workout, 0, len(s.order))
	for _, d := range s.order {
		out = append(out, s.byDay[d])
	}
	return out
}

// FindByDay looks day up in the snapshot.
func (s *WorkoutStore) FindByDay(day domain.Day) (domain.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.byDay[day]
	return w, ok
}

func (s *WorkoutStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *WorkoutStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.order), ByCategory: make(map[domain.Category]int, len(domain.Categories()))}
	for _, w := range s.byDay {
		st.ByCategory[w.Category]++
	}
	return st
}

// Insert creates a workout with a fresh id. A day that already has a
// workout is rejected with repository.ErrDayTaken.
func (s *WorkoutStore) Insert(ctx context.Context, d domain.Draft) (domain.Workout, error) {
	if err := d.Validate(); err != nil {
		return domain.Workout{}, err
	}
	w := s.newWorkout(d)
	if err := s.repo.Insert(ctx, w); err != nil {
		return domain.Workout{}, err
	}
	s.put(w)
	return w, nil
}

// Upsert makes d the single workout for its day in one atomic write. When
// the snapshot already holds identical fields nothing is written.
func (s *WorkoutStore) Upsert(ctx context.Context, d domain.Draft) (domain.Workout, error) {
	if err := d.Validate(); err != nil {
		return domain.Workout{}, err
	}
	if existing, ok := s.FindByDay(d.Day); ok && existing.Draft() == d {
		return existing, nil
	}
	stored, err := s.repo.Upsert(ctx, s.newWorkout(d))
	if err != nil {
		return domain.Workout{}, err
	}
	s.put(stored)
	return stored, nil
}

// DeleteByDay removes every workout for day. Deleting an empty day returns
// 0 and no error.
func (s *WorkoutStore) DeleteByDay(ctx context.Context, day domain.Day) (int64, error) {
	n, err := s.repo.DeleteByDay(ctx, day)
	if err != nil {
		return 0, err
	}
	s.remove(day)
	return n, nil
}

func (s *WorkoutStore) newWorkout(d domain.Draft) domain.Workout {
	now := s.now()
	return domain.Workout{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Day:         d.Day,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *WorkoutStore) put(w domain.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byDay[w.Day]; !ok {
		idx, _ := slices.BinarySearchFunc(s.order, w.Day, domain.Day.Compare)
		s.order = slices.Insert(s.order, idx, w.Day)
	}
	s.byDay[w.Day] = w
}

func (s *WorkoutStore) remove(day domain.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byDay[day]; !ok {
		return
	}
	delete(s.byDay, day)
	if idx, found := slices.BinarySearchFunc(s.order, day, domain.Day.Compare); found {
		s.order = slices.Delete(s.order, idx, idx+1)
	}
}
