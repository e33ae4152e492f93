package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmpdir-project/tmpdir/internal/remove"
	"github.com/tmpdir-project/tmpdir/pkg/color"
	"github.com/tmpdir-project/tmpdir/pkg/pathutil"
)

var cleanBase string

var cleanCmd = &cobra.Command{
	Use:   "clean PATH",
	Short: "Recursively delete a scratch directory",
	Long: `Recursively delete a scratch directory and everything beneath it. The
target must be directly under the base directory; anything else is refused.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		base := resolveBase(cleanBase, cfg)
		target := args[0]

		if err := pathutil.WithinBase(base, target); err != nil {
			fmtErr("refusing to clean %s: %v", target, err)
			os.Exit(1)
		}
		if err := remove.Tree(target); err != nil {
			fmtErr("clean %s: %v", target, err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(map[string]string{"removed": target})
			return
		}
		fmt.Printf("%s %s\n", color.Success("removed"), target)
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanBase, "base", "", "directory the target must live under (default: config, then system temp dir)")
	rootCmd.AddCommand(cleanCmd)
}
