package tmpdir_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpdir-project/tmpdir/pkg/errclass"
	"github.com/tmpdir-project/tmpdir/pkg/logging"
	"github.com/tmpdir-project/tmpdir/pkg/tmpdir"
)

// fixedNames always yields the same candidate, forcing every attempt after
// the first to collide.
type fixedNames struct {
	name string
}

func (f fixedNames) Next() string { return f.name }

func TestNewIn_CreatesEmptyDirectory(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "job")
	require.NoError(t, err)
	defer d.Cleanup()

	info, err := os.Stat(d.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(d.Path())
	require.NoError(t, err)
	assert.Empty(t, entries, "new directory should be empty")
}

func TestNewIn_NameHasPrefix(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "job")
	require.NoError(t, err)
	defer d.Cleanup()

	name := filepath.Base(d.Path())
	assert.True(t, strings.HasPrefix(name, "job."), "got %q", name)
	assert.Equal(t, base, filepath.Dir(d.Path()))
}

func TestNewIn_EmptyPrefix(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "")
	require.NoError(t, err)
	defer d.Cleanup()

	name := filepath.Base(d.Path())
	assert.False(t, strings.HasPrefix(name, "."), "empty prefix must not produce a hidden directory: %q", name)
}

func TestCreate_RelativeBaseResolved(t *testing.T) {
	base := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(base))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.Mkdir(filepath.Join(base, "scratch"), 0o755))

	d, err := tmpdir.NewIn("scratch", "rel")
	require.NoError(t, err)
	defer d.Cleanup()

	assert.True(t, filepath.IsAbs(d.Path()))
	assert.DirExists(t, d.Path())
}

func TestCreate_ConcurrentUniquePaths(t *testing.T) {
	base := t.TempDir()
	const n = 32

	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := tmpdir.NewIn(base, "race")
			if err != nil {
				errs[i] = err
				return
			}
			paths[i] = d.Release()
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[paths[i]], "duplicate path %s", paths[i])
		seen[paths[i]] = true
		assert.DirExists(t, paths[i])
	}
}

func TestClose_RemovesTree(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "close")
	require.NoError(t, err)

	sub := filepath.Join(d.Path(), "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "data.txt"), []byte("x"), 0o644))

	require.NoError(t, d.Close())
	assert.NoDirExists(t, d.Path())
}

func TestClose_Idempotent(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "twice")
	require.NoError(t, err)

	require.NoError(t, d.Close())
	assert.NoError(t, d.Close(), "second close should be a no-op")
}

func TestRelease_PreservesDirectory(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "keep")
	require.NoError(t, err)

	path := d.Release()
	require.NoError(t, os.WriteFile(filepath.Join(path, "data.txt"), []byte("x"), 0o644))

	// Neither Close nor Cleanup may touch a released directory.
	assert.NoError(t, d.Close())
	d.Cleanup()

	assert.DirExists(t, path)
	assert.FileExists(t, filepath.Join(path, "data.txt"))
}

func TestPath_ValidAfterRelease(t *testing.T) {
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "info")
	require.NoError(t, err)

	path := d.Release()
	assert.Equal(t, path, d.Path())
}

func TestCleanup_ScopeScenario(t *testing.T) {
	base := t.TempDir()

	var path string
	func() {
		d, err := tmpdir.NewIn(base, "job")
		require.NoError(t, err)
		defer d.Cleanup()

		path = d.Path()
		require.NoError(t, os.WriteFile(filepath.Join(path, "data.txt"), []byte("payload"), 0o644))
	}()

	assert.NoFileExists(t, filepath.Join(path, "data.txt"))
	assert.NoDirExists(t, path)
}

func TestCreate_NonexistentBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "does", "not", "exist")

	d, err := tmpdir.NewIn(base, "x")
	require.Error(t, err)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, errclass.ErrCreateFailed)
	assert.NoDirExists(t, base)
}

func TestCreate_Exhausted(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "taken"), 0o755))

	d, err := tmpdir.Create(tmpdir.Options{
		Base:        base,
		Names:       fixedNames{name: "taken"},
		MaxAttempts: 10,
	})
	require.Error(t, err)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, errclass.ErrCreateExhausted)
	assert.NotErrorIs(t, err, errclass.ErrCreateFailed)

	// No second directory appeared.
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCleanup_LogsFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission failures are invisible to root")
	}
	base := t.TempDir()

	var buf bytes.Buffer
	logger := logging.NewLogger(logging.LevelError)
	logger.SetOutput(&buf)

	d, err := tmpdir.Create(tmpdir.Options{Base: base, Prefix: "locked", Logger: logger})
	require.NoError(t, err)

	inner := filepath.Join(d.Path(), "inner")
	require.NoError(t, os.Mkdir(inner, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inner, "f"), nil, 0o644))
	require.NoError(t, os.Chmod(inner, 0o500))
	t.Cleanup(func() { os.Chmod(inner, 0o755); os.RemoveAll(d.Path()) })

	d.Cleanup()

	output := buf.String()
	assert.Contains(t, output, "temporary directory cleanup failed")
	assert.Contains(t, output, "E_CLEANUP_FAILED")
}

func TestClose_PartialFailureRetiresHandle(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission failures are invisible to root")
	}
	base := t.TempDir()

	d, err := tmpdir.NewIn(base, "partial")
	require.NoError(t, err)

	inner := filepath.Join(d.Path(), "inner")
	require.NoError(t, os.Mkdir(inner, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inner, "f"), nil, 0o644))
	require.NoError(t, os.Chmod(inner, 0o500))
	t.Cleanup(func() { os.Chmod(inner, 0o755); os.RemoveAll(d.Path()) })

	err = d.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrCleanupFailed)

	// The handle is retired: no repeated teardown attempts.
	assert.NoError(t, d.Close())
}

func TestWithIn_CleansUp(t *testing.T) {
	base := t.TempDir()

	var inner string
	err := tmpdir.WithIn(base, "with", func(path string) error {
		inner = path
		return os.WriteFile(filepath.Join(path, "data.txt"), []byte("x"), 0o644)
	})
	require.NoError(t, err)
	assert.NoDirExists(t, inner)
}

func TestWithIn_ReturnsFnError(t *testing.T) {
	base := t.TempDir()
	boom := errors.New("boom")

	var inner string
	err := tmpdir.WithIn(base, "with", func(path string) error {
		inner = path
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoDirExists(t, inner)
}

func TestWithIn_CleansUpOnPanic(t *testing.T) {
	base := t.TempDir()

	var inner string
	require.Panics(t, func() {
		tmpdir.WithIn(base, "panic", func(path string) error {
			inner = path
			panic("boom")
		})
	})
	assert.NoDirExists(t, inner)
}

func TestWithIn_SurfacesCreateError(t *testing.T) {
	base := filepath.Join(t.TempDir(), "missing")

	err := tmpdir.WithIn(base, "with", func(path string) error {
		t.Fatal("fn must not run when creation fails")
		return nil
	})
	assert.ErrorIs(t, err, errclass.ErrCreateFailed)
}
