// Package sweep removes orphaned temporary directories left behind by
// processes that died before their cleanup ran.
package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tmpdir-project/tmpdir/internal/remove"
	"github.com/tmpdir-project/tmpdir/pkg/logging"
	"github.com/tmpdir-project/tmpdir/pkg/pathutil"
	"github.com/tmpdir-project/tmpdir/pkg/progress"
)

// Sweeper scans a base directory for abandoned scratch directories.
type Sweeper struct {
	Base     string
	Prefix   string
	MaxAge   time.Duration
	Logger   *logging.Logger
	Progress progress.Callback
}

// Candidate is one directory a plan proposes to remove.
type Candidate struct {
	Path    string        `json:"path"`
	Name    string        `json:"name"`
	ModTime time.Time     `json:"mod_time"`
	Age     time.Duration `json:"age"`
}

// Plan lists what a sweep would remove.
type Plan struct {
	Base       string      `json:"base"`
	Prefix     string      `json:"prefix"`
	ScannedAt  time.Time   `json:"scanned_at"`
	Candidates []Candidate `json:"candidates"`
}

// Result summarizes an executed sweep.
type Result struct {
	Removed []string `json:"removed"`
	Failed  []string `json:"failed,omitempty"`
}

// New creates a Sweeper.
func New(base, prefix string, maxAge time.Duration) *Sweeper {
	return &Sweeper{Base: base, Prefix: prefix, MaxAge: maxAge}
}

// Plan scans the base directory and returns the directories that match the
// prefix and are older than MaxAge. Only directories are considered; files
// and symlinks under the base are someone else's.
func (s *Sweeper) Plan() (*Plan, error) {
	entries, err := os.ReadDir(s.Base)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Base, err)
	}

	now := time.Now()
	plan := &Plan{
		Base:      s.Base,
		Prefix:    s.Prefix,
		ScannedAt: now.UTC(),
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !pathutil.NormalizedHasPrefix(entry.Name(), s.Prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// The entry disappeared between ReadDir and Info.
			continue
		}
		age := now.Sub(info.ModTime())
		if age < s.MaxAge {
			continue
		}
		plan.Candidates = append(plan.Candidates, Candidate{
			Path:    filepath.Join(s.Base, entry.Name()),
			Name:    entry.Name(),
			ModTime: info.ModTime().UTC(),
			Age:     age,
		})
	}
	return plan, nil
}

// Run deletes every candidate in the plan, best-effort: a failure on one
// directory is logged and the sweep moves on. Each candidate is re-checked
// for containment under the base before anything is deleted.
func (s *Sweeper) Run(plan *Plan) (*Result, error) {
	log := s.Logger
	if log == nil {
		log = logging.Global()
	}

	tracker := progress.New("sweep", len(plan.Candidates), s.Progress)

	result := &Result{}
	for _, c := range plan.Candidates {
		tracker.Increment(c.Name)
		if err := pathutil.WithinBase(s.Base, c.Path); err != nil {
			log.ErrorErr("sweep refused candidate", err, map[string]any{"path": c.Path})
			result.Failed = append(result.Failed, c.Path)
			continue
		}
		if err := remove.Tree(c.Path); err != nil {
			log.ErrorErr("sweep failed to remove directory", err, map[string]any{"path": c.Path})
			result.Failed = append(result.Failed, c.Path)
			continue
		}
		log.Debug("sweep removed directory", map[string]any{"path": c.Path})
		result.Removed = append(result.Removed, c.Path)
	}
	return result, nil
}
