package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrZeroDay is returned for a draft with no day.
var ErrZeroDay = errors.New("workout day is required")

// Workout is one recorded workout. At most one exists per Day.
type Workout struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Category    Category  `json:"category" yaml:"category"`
	Day         Day       `json:"day" yaml:"day"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Draft holds the user-editable fields of a workout.
type Draft struct {
	Title       string
	Description string
	Category    Category
	Day         Day
}

// Draft returns the editable fields of w.
func (w Workout) Draft() Draft {
	return Draft{Title: w.Title, Description: w.Description, Category: w.Category, Day: w.Day}
}

// Validate checks the fields the store cannot persist without. Empty titles
// and descriptions are allowed.
func (d Draft) Validate() error {
	if d.Day.IsZero() {
		return ErrZeroDay
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(d.Category))
	}
	return nil
}
