// Package pathutil provides name matching and containment checks for tmpdir.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tmpdir-project/tmpdir/pkg/errclass"
)

// NormalizedHasPrefix reports whether name starts with prefix after NFC
// normalization of both sides. Filesystems differ on the normalization form
// they store (HFS+ decomposes, most others keep what they are given), so a
// byte comparison would miss equivalent names.
func NormalizedHasPrefix(name, prefix string) bool {
	return strings.HasPrefix(norm.NFC.String(name), norm.NFC.String(prefix))
}

// ValidatePrefix checks that prefix cannot steer a candidate name out of the
// base directory. Empty is allowed; the library treats prefixes verbatim, so
// this is a CLI-level check.
func ValidatePrefix(prefix string) error {
	if strings.ContainsAny(prefix, "/\\") {
		return errclass.ErrNameInvalid.WithMessagef("prefix must not contain separators: %s", prefix)
	}
	if prefix == ".." || strings.HasPrefix(prefix, "..") {
		return errclass.ErrNameInvalid.WithMessagef("prefix must not start with '..': %s", prefix)
	}
	return nil
}

// ValidateBaseName checks that name is usable as a single path component.
func ValidateBaseName(name string) error {
	if name == "" {
		return errclass.ErrNameInvalid.WithMessage("name must not be empty")
	}
	if name == "." || name == ".." {
		return errclass.ErrNameInvalid.WithMessagef("name must not be a relative component: %s", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return errclass.ErrNameInvalid.WithMessagef("name must not contain separators: %s", name)
	}
	return nil
}

// WithinBase verifies that target is a direct child of base, after resolving
// symlinks on the base. It guards deletion paths: a sweep or clean must never
// reach outside the directory it was pointed at.
func WithinBase(base, target string) error {
	resolvedBase, err := filepath.EvalSymlinks(base)
	if err != nil {
		return errclass.ErrPathEscape.WithMessagef("cannot resolve base: %v", err)
	}

	target = filepath.Clean(target)
	if !filepath.IsAbs(target) {
		cwd, err := os.Getwd()
		if err != nil {
			return errclass.ErrPathEscape.WithMessagef("cannot resolve target: %v", err)
		}
		target = filepath.Join(cwd, target)
	}

	if err := ValidateBaseName(filepath.Base(target)); err != nil {
		return errclass.ErrPathEscape.WithMessagef("invalid target name: %s", target)
	}

	// The parent must resolve to the base itself. The final component is
	// deliberately not resolved: deleting through a symlinked leaf would
	// follow it out of the tree.
	parent, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		return errclass.ErrPathEscape.WithMessagef("cannot resolve parent of %s: %v", target, err)
	}
	if parent != resolvedBase {
		return errclass.ErrPathEscape.WithMessagef("%s is not directly under %s", target, base)
	}
	return nil
}
