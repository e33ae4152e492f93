package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmpdir-project/tmpdir/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage tmpdir configuration",
	Long: `Manage tmpdir configuration.

Configuration options:
  base_dir       - Parent directory for new scratch directories
  prefix         - Default name prefix
  sweep.max_age  - Age cutoff for sweep (Go duration, e.g. 24h)
  logging.level  - Log level (debug, info, warn, error)

Available commands:
  show  - Show current configuration
  init  - Write a default config file`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if jsonOutput {
			outputJSON(cfg)
			return
		}

		fmt.Println("# tmpdir configuration")
		if cfg.BaseDir != "" {
			fmt.Printf("base_dir: %s\n", cfg.BaseDir)
		} else {
			fmt.Printf("base_dir: (system temp dir: %s)\n", os.TempDir())
		}
		fmt.Printf("prefix: %s\n", cfg.Prefix)
		fmt.Printf("sweep:\n  max_age: %s\n", cfg.Sweep.MaxAge)
		fmt.Printf("logging:\n  level: %s\n", cfg.Logging.Level)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				fmtErr("locate config: %v", err)
				os.Exit(1)
			}
		}
		if _, err := os.Stat(path); err == nil {
			fmtErr("config already exists at %s", path)
			os.Exit(1)
		}
		if err := config.Save(path, config.Default()); err != nil {
			fmtErr("write config: %v", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
