// Package binder keeps the calendar's view state in step with the workout
// store: which day is selected, whether the edit sheet is open, and what the
// user has typed so far.
package binder

import (
	"context"
	"errors"
	"strconv"

	"github.com/vladjdk/gym-counter/internal/domain"
)

// ErrSheetClosed is returned by Save and Delete when no day is being edited.
var ErrSheetClosed = errors.New("no day is being edited")

// Store is the part of the workout store the binder drives.
type Store interface {
	FindByDay(day domain.Day) (domain.Workout, bool)
	Upsert(ctx context.Context, d domain.Draft) (domain.Workout, error)
	DeleteByDay(ctx context.Context, day domain.Day) (int64, error)
	Count() int
}

type Options struct {
	DefaultCategory domain.Category
	// MonthsBack and MonthsForward bound the range of days the calendar
	// offers around today.
	MonthsBack    int
	MonthsForward int
}

// DefaultOptions shows one year either side of today.
func DefaultOptions() Options {
	return Options{DefaultCategory: domain.ChestTriceps, MonthsBack: 12, MonthsForward: 12}
}

// Decoration is what the calendar needs to draw one day cell.
type Decoration struct {
	Day        domain.Day
	Label      string
	HasWorkout bool
	Category   domain.Category
	Color      string
}

// Binder mediates between day taps and the store. It is not safe for
// concurrent use; the UI drives it from one goroutine.
type Binder struct {
	store Store
	opts  Options

	open     bool
	existing bool
	selected domain.Day
	buf      domain.Draft
}

func New(store Store, opts Options) *Binder {
	if !opts.DefaultCategory.Valid() {
		opts.DefaultCategory = domain.ChestTriceps
	}
	if opts.MonthsBack < 0 {
		opts.MonthsBack = 0
	}
	if opts.MonthsForward < 0 {
		opts.MonthsForward = 0
	}
	b := &Binder{store: store, opts: opts}
	b.reset()
	return b
}

// Tap selects day and opens the edit sheet, pre-filled from the stored
// workout when there is one. A tap while the sheet is open is ignored and
// reported as false.
func (b *Binder) Tap(day domain.Day) bool {
	if b.open || day.IsZero() {
		return false
	}
	b.selected = day
	b.open = true
	b.buf = domain.Draft{Category: b.opts.DefaultCategory, Day: day}
	if w, ok := b.store.FindByDay(day); ok {
		b.existing = true
		b.buf = w.Draft()
	}
	return true
}

func (b *Binder) IsOpen() bool { return b.open }

// HasExisting reports whether the open sheet edits a stored workout.
func (b *Binder) HasExisting() bool { return b.open && b.existing }

// Selected returns the day being edited.
func (b *Binder) Selected() (domain.Day, bool) { return b.selected, b.open }

// Buffer returns the in-progress edit.
func (b *Binder) Buffer() domain.Draft { return b.buf }

func (b *Binder) SetTitle(s string) {
	if b.open {
		b.buf.Title = s
	}
}

func (b *Binder) SetDescription(s string) {
	if b.open {
		b.buf.Description = s
	}
}

func (b *Binder) SetCategory(c domain.Category) {
	if b.open && c.Valid() {
		b.buf.Category = c
	}
}

// CycleCategory moves the buffer's category step places through the
// display order.
func (b *Binder) CycleCategory(step int) domain.Category {
	if b.open {
		b.buf.Category = b.buf.Category.Next(step)
	}
	return b.buf.Category
}

// Save writes the buffer as the single workout for the selected day. On
// error the sheet stays open with the buffer intact.
func (b *Binder) Save(ctx context.Context) (domain.Workout, error) {
	if !b.open {
		return domain.Workout{}, ErrSheetClosed
	}
	w, err := b.store.Upsert(ctx, b.buf)
	if err != nil {
		return domain.Workout{}, err
	}
	b.close()
	return w, nil
}

// Delete removes the selected day's workout. Deleting a day with nothing
// recorded still closes the sheet.
func (b *Binder) Delete(ctx context.Context) error {
	if !b.open {
		return ErrSheetClosed
	}
	if _, err := b.store.DeleteByDay(ctx, b.selected); err != nil {
		return err
	}
	b.close()
	return nil
}

// Cancel closes the sheet and discards the buffer. Storage is not touched.
func (b *Binder) Cancel() { b.close() }

// Decorate derives the cell decoration for day from the store snapshot.
func (b *Binder) Decorate(day domain.Day) Decoration {
	d := Decoration{Day: day, Label: strconv.Itoa(day.Day), Color: domain.NeutralColor}
	if w, ok := b.store.FindByDay(day); ok {
		d.HasWorkout = true
		d.Category = w.Category
		d.Color = w.Category.Color()
	}
	return d
}

// ChangeToken changes whenever the number of stored workouts changes; the
// calendar redraws when it does.
func (b *Binder) ChangeToken() int { return b.store.Count() }

// VisibleRange is the inclusive span of days the calendar shows around
// today.
func (b *Binder) VisibleRange(today domain.Day) (from, to domain.Day) {
	return today.AddMonths(-b.opts.MonthsBack), today.AddMonths(b.opts.MonthsForward)
}

// InRange reports whether day falls inside VisibleRange(today).
func (b *Binder) InRange(today, day domain.Day) bool {
	from, to := b.VisibleRange(today)
	return day.Within(from, to)
}

func (b *Binder) close() {
	b.open = false
	b.existing = false
	b.selected = domain.Day{}
	b.reset()
}

func (b *Binder) reset() {
	b.buf = domain.Draft{Category: b.opts.DefaultCategory}
}
