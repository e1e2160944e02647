package sample

import (
	"context"
	"math/rand"

	"github.com/vladjdk/gym-counter/internal/domain"
)

// Inserter is the part of the workout store Seed writes through.
type Inserter interface {
	Insert(ctx context.Context, d domain.Draft) (domain.Workout, error)
}

var titles = []string{"Push Day", "Pull Day", "Leg Day", "Shoulders & Core", "Easy Run", "Mobility"}

// Seed inserts n sample workouts starting at start, spaced one to three days
// apart. The same seed always produces the same log.
func Seed(ctx context.Context, store Inserter, start domain.Day, n int, seed int64) ([]domain.Workout, error) {
	rng := rand.New(rand.NewSource(seed))
	cats := domain.Categories()

	out := make([]domain.Workout, 0, n)
	day := start
	for i := 0; i < n; i++ {
		w, err := store.Insert(ctx, domain.Draft{
			Title:    titles[rng.Intn(len(titles))],
			Category: cats[rng.Intn(len(cats))],
			Day:      day,
		})
		if err != nil {
			return out, err
		}
		out = append(out, w)
		day = day.AddDays(1 + rng.Intn(3))
	}
	return out, nil
}
