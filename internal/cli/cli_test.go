package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpdir-project/tmpdir/pkg/config"
)

// run executes the root command in-process. Error paths in the commands call
// os.Exit, so only happy paths are exercised here.
func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

// scratchConfig returns a --config path that does not exist, so every run
// sees defaults instead of the developer's real config.
func scratchConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestCreate_ThenClean(t *testing.T) {
	base := t.TempDir()
	cfg := scratchConfig(t)

	run(t, "create", "--config", cfg, "--base", base, "--prefix", "cli")

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), "cli."))

	created := filepath.Join(base, entries[0].Name())
	require.NoError(t, os.WriteFile(filepath.Join(created, "data.txt"), []byte("x"), 0o644))

	run(t, "clean", "--config", cfg, "--base", base, created)
	assert.NoDirExists(t, created)
}

func TestSweep_DryRunKeepsDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := scratchConfig(t)

	stale := filepath.Join(base, "cli.stale")
	require.NoError(t, os.Mkdir(stale, 0o755))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	run(t, "sweep", "--config", cfg, "--base", base, "--prefix", "cli", "--max-age", "1h", "--dry-run")
	assert.DirExists(t, stale)
}

func TestSweep_RemovesStaleDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := scratchConfig(t)

	stale := filepath.Join(base, "cli.stale")
	fresh := filepath.Join(base, "cli.fresh")
	require.NoError(t, os.Mkdir(stale, 0o755))
	require.NoError(t, os.Mkdir(fresh, 0o755))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	// Flag values survive across Execute calls in-process, so dry-run is
	// reset explicitly.
	run(t, "sweep", "--config", cfg, "--base", base, "--prefix", "cli", "--max-age", "1h", "--dry-run=false")

	assert.NoDirExists(t, stale)
	assert.DirExists(t, fresh)
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	cfgPath := scratchConfig(t)

	run(t, "config", "init", "--config", cfgPath)

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), loaded)
}
