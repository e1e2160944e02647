package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/domain"
)

// WorkoutFilter restricts List to an inclusive day range. Zero bounds are
// open.
type WorkoutFilter struct {
	From domain.Day
	To   domain.Day
}

// WorkoutRepo handles workouts.
type WorkoutRepo struct {
	db *sql.DB
}

func NewWorkoutRepo(db *sql.DB) *WorkoutRepo { return &WorkoutRepo{db: db} }

const workoutColumns = "id, title, description, category, day, created_at, updated_at"

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List returns workouts ordered by day ascending.
func (r *WorkoutRepo) List(ctx context.Context, f WorkoutFilter) ([]domain.Workout, error) {
	var where []string
	var args []any
	if !f.From.IsZero() {
		where = append(where, "day >= ?")
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where = append(where, "day <= ?")
		args = append(args, f.To)
	}

	query := "SELECT " + workoutColumns + " FROM workouts"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY day ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readErr("list workouts", err)
	}
	defer rows.Close()

	var out []domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, readErr("list workouts", err)
		}
		out = append(out, w)
	}
	return out, readErr("list workouts", rows.Err())
}

// GetByDay returns the workout recorded for day, or nil when there is none.
func (r *WorkoutRepo) GetByDay(ctx context.Context, day domain.Day) (*domain.Workout, error) {
	w, err := getByDay(ctx, r.db, day)
	return w, readErr("get workout", err)
}

// Insert adds a new workout. A second workout for the same day is rejected
// with ErrDayTaken.
func (r *WorkoutRepo) Insert(ctx context.Context, w domain.Workout) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO workouts(id, title, description, category, day, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, w.ID, w.Title, w.Description, w.Category, w.Day, w.CreatedAt, w.UpdatedAt)
	if isUniqueViolation(err) {
		return writeErr("insert workout", ErrDayTaken)
	}
	return writeErr("insert workout", err)
}

// Upsert writes w as the single workout for w.Day in one statement. An
// existing row keeps its id and created_at; the stored row is returned.
func (r *WorkoutRepo) Upsert(ctx context.Context, w domain.Workout) (domain.Workout, error) {
	var stored *domain.Workout
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO workouts(id, title, description, category, day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
		 title=excluded.title,
		 description=excluded.description,
		 category=excluded.category,
		 updated_at=excluded.updated_at;
		`, w.ID, w.Title, w.Description, w.Category, w.Day, w.CreatedAt, w.UpdatedAt); err != nil {
			return err
		}
		var err error
		stored, err = getByDay(ctx, tx, w.Day)
		if err == nil && stored == nil {
			err = sql.ErrNoRows
		}
		return err
	})
	if err != nil {
		return domain.Workout{}, writeErr("upsert workout", err)
	}
	return *stored, nil
}

// DeleteByDay removes every workout recorded for day and returns how many
// rows went away. Deleting an empty day is not an error.
func (r *WorkoutRepo) DeleteByDay(ctx context.Context, day domain.Day) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE day = ?`, day)
	if err != nil {
		return 0, writeErr("delete workout", err)
	}
	n, err := res.RowsAffected()
	return n, writeErr("delete workout", err)
}

// DeleteAll removes every workout inside tx.
func (r *WorkoutRepo) DeleteAll(ctx context.Context, tx *sql.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM workouts`)
	if err != nil {
		return 0, writeErr("delete all workouts", err)
	}
	n, err := res.RowsAffected()
	return n, writeErr("delete all workouts", err)
}

// Count returns the number of stored workouts.
func (r *WorkoutRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&n)
	return n, readErr("count workouts", err)
}

// CountByCategory returns totals per category. Categories with no workouts
// are absent from the map.
func (r *WorkoutRepo) CountByCategory(ctx context.Context) (map[domain.Category]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM workouts GROUP BY category`)
	if err != nil {
		return nil, readErr("count by category", err)
	}
	defer rows.Close()
	out := map[domain.Category]int{}
	for rows.Next() {
		var c domain.Category
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, readErr("count by category", err)
		}
		out[c] = n
	}
	return out, readErr("count by category", rows.Err())
}

func getByDay(ctx context.Context, q querier, day domain.Day) (*domain.Workout, error) {
	row := q.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE day = ?`, day)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// scanner handles both Row and Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (domain.Workout, error) {
	var w domain.Workout
	if err := row.Scan(&w.ID, &w.Title, &w.Description, &w.Category, &w.Day, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.Workout{}, err
	}
	return w, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
