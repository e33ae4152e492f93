package cli

import (
	"fmt"
	"os"

	"github.com/tmpdir-project/tmpdir/pkg/color"
	"github.com/tmpdir-project/tmpdir/pkg/config"
)

// resolveBase picks the base directory from the flag, then config, then the
// system temp dir, and verifies it exists.
func resolveBase(flagBase string, cfg *config.Config) string {
	base := flagBase
	if base == "" {
		base = cfg.BaseDir
	}
	if base == "" {
		base = os.TempDir()
	}
	info, err := os.Stat(base)
	if err != nil {
		fmtErr("base directory %s: %v", base, err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmtErr("base %s is not a directory", base)
		os.Exit(1)
	}
	return base
}

// resolvePrefix picks the prefix from the flag, falling back to config.
func resolvePrefix(flagPrefix string, cfg *config.Config) string {
	if flagPrefix != "" {
		return flagPrefix
	}
	return cfg.Prefix
}

func fmtErr(format string, args ...any) {
	// Colorize the error prefix
	prefix := "tmpdir: "
	if color.Enabled() {
		prefix = color.Error("tmpdir:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
