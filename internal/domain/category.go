package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Category is the closed set of workout kinds. The string value is the
// persisted slug.
type Category string

const (
	ChestTriceps Category = "chest-triceps"
	BackBiceps   Category = "back-biceps"
	Shoulders    Category = "shoulders"
	Legs         Category = "legs"
	Other        Category = "other"
)

// NeutralColor decorates days with no workout.
const NeutralColor = "#585b70"

// ErrUnknownCategory is returned when input matches no category.
var ErrUnknownCategory = errors.New("unknown category")

// maxParseDistance bounds how far a misspelling may be from a category name.
const maxParseDistance = 2

type categoryInfo struct {
	label string
	color string
}

// Colors follow the Catppuccin Mocha palette used by the TUI.
var categoryTable = map[Category]categoryInfo{
	ChestTriceps: {label: "Chest & Triceps", color: "#f38ba8"},
	BackBiceps:   {label: "Back & Biceps", color: "#89b4fa"},
	Shoulders:    {label: "Shoulders", color: "#a6e3a1"},
	Legs:         {label: "Legs", color: "#cba6f7"},
	Other:        {label: "Other", color: "#fab387"},
}

// older short names still accepted on input
var categoryAliases = map[string]Category{
	"chesttri": ChestTriceps,
	"backbi":   BackBiceps,
	"chest":    ChestTriceps,
	"back":     BackBiceps,
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{ChestTriceps, BackBiceps, Shoulders, Legs, Other}
}

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Label is the human readable name, e.g. "Chest & Triceps".
func (c Category) Label() string {
	if info, ok := categoryTable[c]; ok {
		return info.label
	}
	return string(c)
}

// Color is the category's display color as a hex string.
func (c Category) Color() string {
	if info, ok := categoryTable[c]; ok {
		return info.color
	}
	return NeutralColor
}

// Next returns the category step positions away in display order, wrapping
// around at both ends.
func (c Category) Next(step int) Category {
	all := Categories()
	idx := 0
	for i, cat := range all {
		if cat == c {
			idx = i
			break
		}
	}
	n := len(all)
	return all[((idx+step)%n+n)%n]
}

// ParseCategory accepts a slug ("back-biceps"), a label ("Back & Biceps"),
// a legacy alias, or a misspelling of one of those within a small edit
// distance. Matching is case-insensitive.
func ParseCategory(s string) (Category, error) {
	key := categoryKey(s)
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownCategory)
	}
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	best, bestDist, tied := Category(""), maxParseDistance+1, false
	for _, c := range Categories() {
		for _, name := range []string{string(c), c.Label()} {
			dist := levenshtein.ComputeDistance(key, categoryKey(name))
			switch {
			case dist == 0:
				return c, nil
			case dist < bestDist:
				best, bestDist, tied = c, dist, false
			case dist == bestDist && c != best:
				tied = true
			}
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	if tied {
		return "", fmt.Errorf("%w: %q is ambiguous", ErrUnknownCategory, s)
	}
	return best, nil
}

// categoryKey folds case and drops everything but letters and digits, so
// "Chest & Triceps" and "chest-triceps" share a key.
func categoryKey(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return []byte(c), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return string(c), nil
}

// Scan is strict: stored values must be exact slugs.
func (c *Category) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("category: cannot scan %T", src)
	}
	cat := Category(s)
	if !cat.Valid() {
		return fmt.Errorf("%w: stored value %q", ErrUnknownCategory, s)
	}
	*c = cat
	return nil
}
