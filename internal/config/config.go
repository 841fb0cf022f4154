package config

import (
	"fmt"

	"github.com/dshills/lightremote/internal/light"
	"github.com/dshills/lightremote/internal/logging"
	"github.com/dshills/lightremote/internal/remote"
)

// Config is the resolved lightremote configuration.
type Config struct {
	Light    LightConfig    `toml:"light" yaml:"light" envPrefix:"LIGHT_"`
	Messages MessagesConfig `toml:"messages" yaml:"messages" envPrefix:"MESSAGES_"`
	History  HistoryConfig  `toml:"history" yaml:"history" envPrefix:"HISTORY_"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging" envPrefix:"LOG_"`

	// Script is a Lua driver script run instead of the built-in demo.
	Script string `toml:"script" yaml:"script" env:"SCRIPT"`

	// Interactive starts the terminal remote.
	Interactive bool `toml:"interactive" yaml:"interactive" env:"INTERACTIVE"`
}

// LightConfig configures the receiver.
type LightConfig struct {
	Name string `toml:"name" yaml:"name" env:"NAME"`
}

// MessagesConfig holds the output line for each outcome.
type MessagesConfig struct {
	On            string `toml:"on" yaml:"on" env:"ON"`
	Off           string `toml:"off" yaml:"off" env:"OFF"`
	NothingToUndo string `toml:"nothing_to_undo" yaml:"nothing_to_undo" env:"NOTHING_TO_UNDO"`
}

// HistoryConfig configures the undo history.
type HistoryConfig struct {
	// MaxEntries caps the history depth; zero means unbounded.
	MaxEntries int `toml:"max_entries" yaml:"max_entries" env:"MAX_ENTRIES"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" env:"LEVEL"`
	Format string `toml:"format" yaml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Light: LightConfig{Name: "living-room"},
		Messages: MessagesConfig{
			On:            light.MessageOn,
			Off:           light.MessageOff,
			NothingToUndo: remote.MessageNothingToUndo,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.Light.Name == "" {
		problems = append(problems, "light.name must not be empty")
	}
	if c.Messages.On == "" {
		problems = append(problems, "messages.on must not be empty")
	}
	if c.Messages.Off == "" {
		problems = append(problems, "messages.off must not be empty")
	}
	if c.Messages.NothingToUndo == "" {
		problems = append(problems, "messages.nothing_to_undo must not be empty")
	}
	if c.History.MaxEntries < 0 {
		problems = append(problems, fmt.Sprintf("history.max_entries must not be negative (got %d)", c.History.MaxEntries))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, "logging.level: "+err.Error())
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be %q or %q (got %q)",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format))
	}
	if c.Script != "" && c.Interactive {
		problems = append(problems, "script and interactive are mutually exclusive")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
