package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitAndShow(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")
	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	_, _, err = runCLI(t, dir, "config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	out, _, err = runCLI(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "gym.db"))
	assert.Contains(t, out, "chest-triceps")
}
