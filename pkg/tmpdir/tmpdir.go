package tmpdir

import (
	"os"
	"path/filepath"

	"github.com/tmpdir-project/tmpdir/internal/remove"
	"github.com/tmpdir-project/tmpdir/pkg/errclass"
	"github.com/tmpdir-project/tmpdir/pkg/logging"
	"github.com/tmpdir-project/tmpdir/pkg/namegen"
)

// DefaultMaxAttempts bounds the naming retry loop. With 62 bits of suffix
// entropy, reaching it means the random source is broken or someone is
// deliberately squatting on candidate names.
const DefaultMaxAttempts = 1000

// NameSource yields candidate directory names. namegen.Generator is the
// production implementation.
type NameSource interface {
	Next() string
}

// Options configures Create.
type Options struct {
	Base        string          // Parent directory; defaults to os.TempDir(). Relative paths are resolved against the working directory.
	Prefix      string          // Used verbatim in candidate names; empty is allowed.
	Names       NameSource      // Candidate name source; defaults to namegen.New(Prefix).
	Logger      *logging.Logger // Destination for Cleanup failures; defaults to the global logger.
	MaxAttempts int             // Naming retry bound; defaults to DefaultMaxAttempts.
}

// Dir is the owning handle for one temporary directory. While the handle is
// responsible for deletion, the path refers to a directory this handle
// created; it is never a pre-existing, caller-supplied directory.
type Dir struct {
	path   string
	active bool
	logger *logging.Logger
}

// New creates a temporary directory under os.TempDir() whose name starts
// with prefix.
func New(prefix string) (*Dir, error) {
	return Create(Options{Prefix: prefix})
}

// NewIn creates a temporary directory under base whose name starts with
// prefix.
func NewIn(base, prefix string) (*Dir, error) {
	return Create(Options{Base: base, Prefix: prefix})
}

// Create makes a new uniquely-named directory and returns its handle.
//
// Candidate names are tried until one is created atomically. A name
// collision moves on to the next candidate; any other creation failure
// (missing base, permissions, disk full) aborts immediately with
// errclass.ErrCreateFailed. If every attempt collides the result is
// errclass.ErrCreateExhausted. On error nothing is left on disk.
func Create(opts Options) (*Dir, error) {
	base := opts.Base
	if base == "" {
		base = os.TempDir()
	}
	if !filepath.IsAbs(base) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errclass.ErrCreateFailed.WithMessagef("resolve base %s: %v", base, err)
		}
		base = filepath.Join(cwd, base)
	}

	names := opts.Names
	if names == nil {
		names = namegen.New(opts.Prefix)
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		path := filepath.Join(base, names.Next())
		err := os.Mkdir(path, 0o700)
		if err == nil {
			return &Dir{path: path, active: true, logger: opts.Logger}, nil
		}
		if os.IsExist(err) {
			continue
		}
		return nil, errclass.ErrCreateFailed.WithMessagef("create %s: %v", path, err)
	}
	return nil, errclass.ErrCreateExhausted.WithMessagef(
		"no unused name under %s after %d attempts", base, attempts)
}

// Path returns the owned path. It stays valid after Release or Close for
// informational use; after Release the caller owns cleanup.
func (d *Dir) Path() string {
	return d.path
}

// Release disables automatic deletion and returns the path, transferring
// ownership of the directory to the caller. No action of this handle will
// delete it afterwards.
func (d *Dir) Release() string {
	d.active = false
	return d.path
}

// Close recursively deletes the directory and everything beneath it.
//
// The handle is retired even when deletion partially fails, so a later
// Close or Cleanup will not retry; whatever could not be removed stays on
// disk and is reported as errclass.ErrCleanupFailed. Closing an already
// retired handle is a no-op returning nil.
func (d *Dir) Close() error {
	if !d.active {
		return nil
	}
	d.active = false
	if err := remove.Tree(d.path); err != nil {
		return errclass.ErrCleanupFailed.WithMessagef("remove %s: %v", d.path, err)
	}
	return nil
}

// Cleanup is Close for defer: a teardown failure cannot be returned to
// anyone at scope exit, so it is logged instead of silently dropped.
func (d *Dir) Cleanup() {
	if err := d.Close(); err != nil {
		log := d.logger
		if log == nil {
			log = logging.Global()
		}
		log.ErrorErr("temporary directory cleanup failed", err,
			map[string]any{"path": d.path})
	}
}

func (d *Dir) String() string {
	return "tmpdir.Dir(" + d.path + ")"
}

// With creates a directory under os.TempDir(), runs fn against its path, and
// removes it on the way out, panics included.
func With(prefix string, fn func(path string) error) error {
	return WithIn("", prefix, fn)
}

// WithIn is With, rooted at base.
func WithIn(base, prefix string, fn func(path string) error) error {
	d, err := Create(Options{Base: base, Prefix: prefix})
	if err != nil {
		return err
	}
	defer d.Cleanup()
	return fn(d.path)
}
