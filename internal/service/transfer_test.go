package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladjdk/gym-counter/internal/domain"
)

func seedTransfer(t *testing.T, store *WorkoutStore) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []domain.Draft{
		{Title: "Pull", Description: `5x5 "heavy"`, Category: domain.BackBiceps, Day: day("2025-01-15")},
		{Title: "Push Day", Category: domain.ChestTriceps, Day: day("2025-01-10")},
		{Title: "Leg Day", Description: "squats, lunges", Category: domain.Legs, Day: day("2025-01-12")},
	} {
		_, err := store.Insert(ctx, d)
		require.NoError(t, err)
	}
}

func TestExportCSVGolden(t *testing.T) {
	t.Parallel()
	store, _, _ := newTestStore(t)
	seedTransfer(t, store)

	var buf bytes.Buffer
	svc := &TransferService{Store: store}
	require.NoError(t, svc.ExportCSV(&buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export_csv", buf.Bytes())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src, _, _ := newTestStore(t)
	seedTransfer(t, src)

	var buf bytes.Buffer
	require.NoError(t, (&TransferService{Store: src}).ExportYAML(&buf))
	assert.Contains(t, buf.String(), "workouts:")

	dst, _, _ := newTestStore(t)
	res, err := (&TransferService{Store: dst}).ImportYAML(ctx, &buf, ImportOptions{})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	assert.Equal(t, 3, res.Imported)

	want := src.Snapshot()
	got := dst.Snapshot()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Draft(), got[i].Draft())
	}
}

func TestImportCSVSkipsExistingDays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	_, err := store.Insert(ctx, domain.Draft{Title: "mine", Category: domain.Legs, Day: day("2025-02-01")})
	require.NoError(t, err)

	in := "day,category,title,description\n" +
		"2025-02-01,shoulders,theirs,\n" +
		"2025-02-02,Back & Biceps,rows,\n" +
		"3/02/2025,chesttri,bench,flat\n"
	svc := &TransferService{Store: store}
	res, err := svc.ImportCSV(ctx, strings.NewReader(in), ImportOptions{})
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Zero(t, res.Replaced)

	kept, ok := store.FindByDay(day("2025-02-01"))
	require.True(t, ok)
	assert.Equal(t, "mine", kept.Title)

	got, ok := store.FindByDay(day("2025-02-03"))
	require.True(t, ok)
	assert.Equal(t, domain.ChestTriceps, got.Category)
	assert.Equal(t, "flat", got.Description)
}

func TestImportCSVReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := newTestStore(t)
	orig, err := store.Insert(ctx, domain.Draft{Title: "mine", Category: domain.Legs, Day: day("2025-02-01")})
	require.NoError(t, err)

	svc := &TransferService{Store: store}
	res, err := svc.ImportCSV(ctx, strings.NewReader("2025-02-01,shoulders,theirs\n"), ImportOptions{Replace: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replaced)

	got, ok := store.FindByDay(day("2025-02-01"))
	require.True(t, ok)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, "theirs", got.Title)
	assert.Equal(t, domain.Shoulders, got.Category)
	assert.Equal(t, 1, store.Count())
}

func TestImportCSVCollectsRowErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	in := "2025-13-40,legs,bad day\n" +
		"2025-02-01,cardio,bad category\n" +
		"2025-02-02,legs\n" +
		"2025-02-03,legs,good\n"
	res, err := (&TransferService{Store: store}).ImportCSV(ctx, strings.NewReader(in), ImportOptions{})
	require.NoError(t, err)
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0].Error(), "line 1")
	assert.ErrorIs(t, res.Errors[1], domain.ErrUnknownCategory)
	assert.Contains(t, res.Errors[2].Error(), "line 3")
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, store.Count())
}

func TestImportCSVNumbersPhysicalLines(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	in := "\ufeffday,category,title,description\n" +
		"2025-03-01,legs,Legs,\"squats\nlunges\ncalf raises\"\n" +
		"2025-03-02,cardio,Run,\n" +
		"2025-03-03,back-biceps,Pull,\n"
	res, err := (&TransferService{Store: store}).ImportCSV(ctx, strings.NewReader(in), ImportOptions{})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Error(), "line 5:")
	assert.Equal(t, 2, res.Imported)

	w, ok := store.FindByDay(day("2025-03-01"))
	require.True(t, ok)
	assert.Equal(t, "squats\nlunges\ncalf raises", w.Description)
}

func TestImportYAMLRejectsMalformed(t *testing.T) {
	t.Parallel()
	store, _, _ := newTestStore(t)
	_, err := (&TransferService{Store: store}).ImportYAML(context.Background(), strings.NewReader("workouts: [\n"), ImportOptions{})
	require.Error(t, err)
}
