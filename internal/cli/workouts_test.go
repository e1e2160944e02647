package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladjdk/gym-counter/internal/database"
	"github.com/vladjdk/gym-counter/internal/domain"
)

func TestLogShowDeleteFlow(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "log", "2025-01-10", "--title", "Push Day", "--category", "chest-triceps")
	require.NoError(t, err)
	assert.Equal(t, "Logged Chest & Triceps on 2025-01-10.\n", out)

	out, _, err = runCLI(t, dir, "show", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Fri 10 Jan 2025")
	assert.Contains(t, out, "Push Day")

	// logging again replaces the day
	_, _, err = runCLI(t, dir, "log", "2025-01-10", "-t", "Pull Day", "-c", "Back & Biceps", "-d", "rows")
	require.NoError(t, err)

	out, _, err = runCLI(t, dir, "show", "2025-01-10", "--format", "json")
	require.NoError(t, err)
	var w domain.Workout
	require.NoError(t, json.Unmarshal([]byte(out), &w))
	assert.Equal(t, "Pull Day", w.Title)
	assert.Equal(t, "rows", w.Description)
	assert.Equal(t, domain.BackBiceps, w.Category)

	out, _, err = runCLI(t, dir, "delete", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "Deleted workout on 2025-01-10.\n", out)

	out, _, err = runCLI(t, dir, "delete", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "No workout on 2025-01-10.\n", out)

	out, _, err = runCLI(t, dir, "show", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, "No workout on 2025-01-10.\n", out)
}

func TestLogUsesConfiguredDefaultCategory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ndefault_category = \"legs\"\n"), 0o600))

	out, _, err := runCLI(t, dir, "log", "2025-02-01", "-t", "Squats")
	require.NoError(t, err)
	assert.Contains(t, out, "Legs")
}

func TestLogRejectsUnknownCategory(t *testing.T) {
	t.Parallel()
	_, _, err := runCLI(t, t.TempDir(), "log", "2025-02-01", "-c", "cardio")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListOrderAndFilter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, d := range []string{"2025-03-05", "2025-03-01", "2025-03-10"} {
		_, _, err := runCLI(t, dir, "log", d, "-t", "w"+d, "-c", "other")
		require.NoError(t, err)
	}

	out, _, err := runCLI(t, dir, "list", "--format", "json")
	require.NoError(t, err)
	var list []domain.Workout
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "2025-03-01", list[0].Day.String())
	assert.Equal(t, "2025-03-05", list[1].Day.String())
	assert.Equal(t, "2025-03-10", list[2].Day.String())

	out, _, err = runCLI(t, dir, "list", "--from", "2025-03-02", "--to", "2025-03-09", "--format", "json")
	require.NoError(t, err)
	list = nil
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-05", list[0].Day.String())

	out, _, err = runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "w2025-03-10")
	assert.Contains(t, out, "DAY")
}

func TestListEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out, _, err := runCLI(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "No workouts recorded.\n", out)

	out, _, err = runCLI(t, dir, "list", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, _, err = runCLI(t, dir, "list", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestStatsAndSeed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "seed", "--from", "2025-01-01", "--count", "10", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, "Seeded 10 workouts from 2025-01-01.\n", out)

	out, _, err = runCLI(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Workouts: 10")
	assert.Contains(t, out, "Chest & Triceps")

	_, _, err = runCLI(t, dir, "seed")
	require.Error(t, err, "seeding a non-empty database is refused")

	_, _, err = runCLI(t, dir, "reset")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, _, err = runCLI(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Removed 10 workouts.\n", out)

	out, _, err = runCLI(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Workouts: 0")
}

func TestUnreadableRowFailsSnapshotCommands(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "log", "2025-01-10", "-t", "Push", "-c", "chest-triceps")
	require.NoError(t, err)
	_, _, err = runCLI(t, dir, "log", "2025-01-12", "-t", "Legs", "-c", "legs")
	require.NoError(t, err)

	db, err := database.Open(filepath.Join(dir, "gym.db"))
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(), `UPDATE workouts SET day = '2025-13-45' WHERE day = '2025-01-12'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	for _, args := range [][]string{
		{"list"},
		{"export"},
		{"export", "--format", "yaml"},
		{"stats"},
		{"show", "2025-01-10"},
		{"seed"},
	} {
		out, _, err := runCLI(t, dir, args...)
		require.Error(t, err, args)
		assert.Equal(t, ExitFailure, GetExitCode(err), args)
		assert.Empty(t, out, args)
	}

	// an export file is not created for an unreadable database
	backup := filepath.Join(dir, "backup.csv")
	_, _, err = runCLI(t, dir, "export", "-o", backup)
	require.Error(t, err)
	assert.NoFileExists(t, backup)
}
