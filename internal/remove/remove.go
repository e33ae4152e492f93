// Package remove implements best-effort recursive deletion of a directory
// tree.
package remove

import (
	"fmt"
	"os"
	"path/filepath"
)

// Tree deletes root and everything beneath it, depth-first. Symbolic links
// are removed as links and never followed, so targets outside the tree are
// untouched. A failure on one entry does not stop the traversal: siblings and
// the rest of the tree are still attempted, and the first error encountered
// is returned. On partial failure the unremovable subset (and any ancestor
// directories left non-empty by it) remains on disk.
func Tree(root string) error {
	info, err := os.Lstat(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lstat %s: %w", root, err)
	}
	if !info.IsDir() {
		// A symlink to a directory lands here too: remove the link itself.
		if err := os.Remove(root); err != nil {
			return fmt.Errorf("remove %s: %w", root, err)
		}
		return nil
	}
	return removeDir(root)
}

// removeDir empties dir and then removes it, recording the first failure.
func removeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	var firstErr error
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		var cerr error
		// entry.IsDir() is false for symlinks to directories, so only
		// real directories are descended into.
		if entry.IsDir() {
			cerr = removeDir(child)
		} else if cerr = os.Remove(child); cerr != nil {
			cerr = fmt.Errorf("remove %s: %w", child, cerr)
		}
		if cerr != nil && firstErr == nil {
			firstErr = cerr
		}
	}

	if err := os.Remove(dir); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("remove dir %s: %w", dir, err)
		}
	}
	return firstErr
}
