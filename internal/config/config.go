// Package config loads editor settings from a TOML file with environment
// variable overrides, and watches the file for live reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed indicates a setting holds an unusable value.
	ErrValidationFailed = errors.New("validation failed")
)

// EnvPrefix prefixes every recognized environment override.
const EnvPrefix = "SHORELINE_"

// Config holds the editor settings.
type Config struct {
	// Bell enables the audible alert on boundary conditions.
	Bell bool `toml:"bell"`

	History    HistoryConfig    `toml:"history"`
	Completion CompletionConfig `toml:"completion"`
}

// HistoryConfig configures the history store.
type HistoryConfig struct {
	// Capacity is the fixed number of history slots.
	Capacity int `toml:"capacity"`

	// File, when set, is loaded at startup and saved on close.
	File string `toml:"file"`
}

// CompletionConfig configures the completion engine.
type CompletionConfig struct {
	// Delimiters are the characters bounding a completable token.
	Delimiters string `toml:"delimiters"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Bell: true,
		History: HistoryConfig{
			Capacity: 128,
		},
		Completion: CompletionConfig{
			Delimiters: " \t",
		},
	}
}

// Load reads path into a Config, starting from the defaults and finishing
// with environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// applyEnv overlays SHORELINE_* environment variables.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "BELL"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Bell = b
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HISTORY_CAPACITY"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.History.Capacity = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "HISTORY_FILE"); ok {
		c.History.File = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "COMPLETION_DELIMITERS"); ok {
		c.Completion.Delimiters = v
	}
}

func (c *Config) validate() error {
	if c.History.Capacity <= 0 {
		return fmt.Errorf("%w: history capacity must be positive, got %d",
			ErrValidationFailed, c.History.Capacity)
	}
	return nil
}
