package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmpdir-project/tmpdir/pkg/pathutil"
	"github.com/tmpdir-project/tmpdir/pkg/tmpdir"
)

var (
	createBase   string
	createPrefix string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a scratch directory and print its path",
	Long: `Create a uniquely-named scratch directory and print its path, mktemp -d
style. The directory is handed to the caller and is NOT removed when tmpdir
exits; pass it to "tmpdir clean" or let "tmpdir sweep" collect it later.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		base := resolveBase(createBase, cfg)
		prefix := resolvePrefix(createPrefix, cfg)

		if err := pathutil.ValidatePrefix(prefix); err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		d, err := tmpdir.NewIn(base, prefix)
		if err != nil {
			fmtErr("create: %v", err)
			os.Exit(1)
		}
		// The process is about to exit: ownership goes to the caller.
		path := d.Release()

		if jsonOutput {
			outputJSON(map[string]string{"path": path})
			return
		}
		fmt.Println(path)
	},
}

func init() {
	createCmd.Flags().StringVar(&createBase, "base", "", "parent directory (default: config, then system temp dir)")
	createCmd.Flags().StringVar(&createPrefix, "prefix", "", "name prefix (default: config)")
	rootCmd.AddCommand(createCmd)
}
