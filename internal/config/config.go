// Package config provides configuration for the chess rules engine and the
// programs built on it.
package config

import (
	"io"
	"log/slog"
	"os"
)

// Config holds all program configuration. A Config is passed explicitly to
// the calls that read it; there is no process-wide instance.
type Config struct {
	// Notation handling for move dispatch.
	Notation NotationConfig

	// Options for the display collaborator.
	Display DisplayConfig

	// Verbosity controls diagnostics: 0=nothing, 1=warnings, 2=running commentary.
	Verbosity int

	// Diagnostics are written here.
	LogFile io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Notation:  *NewNotationConfig(),
		Display:   *NewDisplayConfig(),
		Verbosity: 1,
		LogFile:   os.Stderr,
	}
}

// Clone returns a copy of the configuration that can be changed independently.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.Notation.Validate(); err != nil {
		return err
	}
	return c.Display.Validate()
}

// Logger returns a structured logger over LogFile at the level implied by
// Verbosity. Notifications lowers the level to info.
func (c *Config) Logger() *slog.Logger {
	w := c.LogFile
	if w == nil || c.Verbosity <= 0 {
		w = io.Discard
	}
	level := slog.LevelWarn
	if c.Notation.Notifications {
		level = slog.LevelInfo
	}
	if c.Verbosity >= 2 {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
