package config

import "time"

// Machine names the special states and the pause key. Each value is a single
// character.
type Machine struct {
	StartState  string `yaml:"start_state"`
	AcceptState string `yaml:"accept_state"`
	PauseKey    string `yaml:"pause_key"`
}

// Parse controls how description files are read.
type Parse struct {
	Strict bool `yaml:"strict"`
}

// Run bounds a simulation. Zero disables each setting.
type Run struct {
	MaxSteps   int           `yaml:"max_steps"`
	StepDelay  time.Duration `yaml:"step_delay"`
	LoopWindow int           `yaml:"loop_window"`
}

// Log configures the stderr logger.
type Log struct {
	Level string `yaml:"level"`
}

// Config represents a .turing.yaml file.
type Config struct {
	Machine Machine `yaml:"machine"`
	Parse   Parse   `yaml:"parse"`
	Run     Run     `yaml:"run"`
	Log     Log     `yaml:"log"`
}
