package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmpdir-project/tmpdir/pkg/color"
	"github.com/tmpdir-project/tmpdir/pkg/config"
	"github.com/tmpdir-project/tmpdir/pkg/logging"
)

var (
	jsonOutput bool
	noColor    bool
	configPath string

	rootCmd = &cobra.Command{
		Use:   "tmpdir",
		Short: "tmpdir - self-cleaning scratch directories",
		Long: `tmpdir creates uniquely-named scratch directories, removes them safely,
and sweeps up directories that earlier runs left behind.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// outputJSON prints v as JSON if --json flag is set, otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadConfig loads the config from --config or the per-user default,
// applies the logging level, and exits on failure.
func loadConfig() *config.Config {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			fmtErr("locate config: %v", err)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmtErr("load config: %v", err)
		os.Exit(1)
	}
	if cfg.Logging.Level != "" {
		logging.Global().SetLevel(logging.Level(cfg.Logging.Level))
	}
	return cfg
}
