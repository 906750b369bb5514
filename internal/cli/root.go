package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/thruflo/turing/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Flag values shared by the commands. Only flags that were set on the
// command line override the config file.
var (
	configPath  string
	logLevel    string
	strictParse bool
	maxSteps    int
	stepDelay   time.Duration
	loopWindow  int
)

var rootCmd = &cobra.Command{
	Use:   "turing <description>",
	Short: "Simulate a single-tape Turing machine",
	Long: `Turing reads a machine description, one transition per line:

  <state> <symbol> <new-state> <new-symbol> <L|R>

then prompts for an input string over {0, 1} and prints the machine's
instantaneous description after every step until it accepts or rejects.
Press h while it runs to stop and enter a new input string.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runMachine,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("turing version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&strictParse, "strict", false, "reject malformed description lines")

	rootCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many steps (0 = unlimited)")
	rootCmd.Flags().DurationVar(&stepDelay, "delay", 0, "pause between steps, e.g. 200ms")
	rootCmd.Flags().IntVar(&loopWindow, "loop-window", 0, "stop when a configuration repeats within this many steps (0 = off)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
