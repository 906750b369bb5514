package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/thruflo/turing/internal/config"
	"github.com/thruflo/turing/internal/logging"
	"github.com/thruflo/turing/internal/machine"
)

// loadSettings reads the file named by --config, or config.FileName in the
// working directory, overlays the flags set on cmd, validates the result and
// applies its log level.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg  *config.Config
		err  error
		path = configPath
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cwd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", wdErr)
		}
		path = filepath.Join(cwd, config.FileName)
		cfg, err = config.LoadConfig(cwd)
	}
	if err != nil {
		if config.IsValidationError(err) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Parse.Strict = strictParse
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("max-steps") {
		cfg.Run.MaxSteps = maxSteps
	}
	if flags.Changed("delay") {
		cfg.Run.StepDelay = stepDelay
	}
	if flags.Changed("loop-window") {
		cfg.Run.LoopWindow = loopWindow
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	logging.Debug("settings loaded", "strict", cfg.Parse.Strict, "max_steps", cfg.Run.MaxSteps, "step_delay", cfg.Run.StepDelay)

	return cfg, nil
}

// loadTable parses the description file at path.
func loadTable(path string, strict bool) (*machine.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open description: %w", err)
	}
	defer f.Close()

	mode := machine.Lenient
	if strict {
		mode = machine.Strict
	}

	table, err := machine.ParseTable(f, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debug("description loaded", "path", path, "mode", mode, "rules", table.Len(), "warnings", len(table.Warnings()))
	return table, nil
}
