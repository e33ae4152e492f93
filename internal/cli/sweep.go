package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmpdir-project/tmpdir/internal/sweep"
	"github.com/tmpdir-project/tmpdir/pkg/color"
	"github.com/tmpdir-project/tmpdir/pkg/progress"
)

var (
	sweepBase     string
	sweepPrefix   string
	sweepMaxAge   time.Duration
	sweepDryRun   bool
	sweepProgress bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove orphaned scratch directories",
	Long: `Scan the base directory for scratch directories matching the prefix that
are older than --max-age and remove them. Directories still younger than the
cutoff are assumed to belong to a live process and are left alone.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		base := resolveBase(sweepBase, cfg)
		prefix := resolvePrefix(sweepPrefix, cfg)

		maxAge := sweepMaxAge
		if !cmd.Flags().Changed("max-age") {
			var err error
			maxAge, err = cfg.SweepMaxAge()
			if err != nil {
				fmtErr("%v", err)
				os.Exit(1)
			}
		}

		s := sweep.New(base, prefix, maxAge)
		plan, err := s.Plan()
		if err != nil {
			fmtErr("sweep plan: %v", err)
			os.Exit(1)
		}

		if sweepDryRun {
			if jsonOutput {
				outputJSON(plan)
				return
			}
			fmt.Printf("would remove %d directories under %s\n", len(plan.Candidates), base)
			for _, c := range plan.Candidates {
				fmt.Printf("  %s (age %s)\n", color.Pathf(c.Path), c.Age.Round(time.Second))
			}
			return
		}

		var bar *progress.Terminal
		if sweepProgress && !jsonOutput {
			bar = progress.NewTerminal("sweep", len(plan.Candidates), true)
			s.Progress = bar.Callback()
		}

		result, err := s.Run(plan)
		if bar != nil {
			bar.Done("")
		}
		if err != nil {
			fmtErr("sweep: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(result)
		} else {
			fmt.Printf("%s %d directories", color.Success("removed"), len(result.Removed))
			if len(result.Failed) > 0 {
				fmt.Printf(", %s %d", color.Warning("failed"), len(result.Failed))
			}
			fmt.Println()
		}
		if len(result.Failed) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepBase, "base", "", "directory to scan (default: config, then system temp dir)")
	sweepCmd.Flags().StringVar(&sweepPrefix, "prefix", "", "only consider directories with this prefix (default: config)")
	sweepCmd.Flags().DurationVar(&sweepMaxAge, "max-age", 24*time.Hour, "only remove directories older than this")
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "show what would be removed without removing it")
	sweepCmd.Flags().BoolVar(&sweepProgress, "progress", false, "show a progress bar while sweeping")
	rootCmd.AddCommand(sweepCmd)
}
