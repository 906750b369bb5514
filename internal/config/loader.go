package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thruflo/turing/internal/logging"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = ".turing.yaml"

// Default values for Config.
const (
	DefaultStartState  = "0"
	DefaultAcceptState = "f"
	DefaultPauseKey    = "h"
	DefaultLogLevel    = "warn"
)

// DefaultConfig returns a Config for the classic machine: start state 0,
// accept state f, pause key h.
func DefaultConfig() Config {
	return Config{
		Machine: Machine{
			StartState:  DefaultStartState,
			AcceptState: DefaultAcceptState,
			PauseKey:    DefaultPauseKey,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig reads FileName from basePath. If the file doesn't exist, returns
// the default config.
func LoadConfig(basePath string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(basePath, FileName))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		def := DefaultConfig()
		return &def, nil
	}
	return cfg, err
}

// LoadFile reads and parses the config file at path, applying defaults for
// any missing fields.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if len(cfg.Machine.StartState) != 1 {
		return ValidationError{Field: "machine.start_state", Message: "must be a single character"}
	}
	if len(cfg.Machine.AcceptState) != 1 {
		return ValidationError{Field: "machine.accept_state", Message: "must be a single character"}
	}
	if cfg.Machine.AcceptState == cfg.Machine.StartState {
		return ValidationError{Field: "machine.accept_state", Message: "must differ from start_state"}
	}
	if len(cfg.Machine.PauseKey) != 1 || cfg.Machine.PauseKey[0] <= ' ' {
		return ValidationError{Field: "machine.pause_key", Message: "must be a single printable character"}
	}
	if cfg.Run.MaxSteps < 0 {
		return ValidationError{Field: "run.max_steps", Message: "must not be negative"}
	}
	if cfg.Run.LoopWindow < 0 {
		return ValidationError{Field: "run.loop_window", Message: "must not be negative"}
	}
	if cfg.Run.StepDelay < 0 {
		return ValidationError{Field: "run.step_delay", Message: "must not be negative"}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be one of debug, info, warn, error"}
	}
	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
