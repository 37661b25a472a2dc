package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMismatchMode sets how notation/board disagreements are handled.
func (b *ConfigBuilder) WithMismatchMode(mode MismatchMode) *ConfigBuilder {
	b.cfg.Notation.Mismatch = mode
	return b
}

// WithSafeMode enables or disables mismatch checking.
func (b *ConfigBuilder) WithSafeMode(enabled bool) *ConfigBuilder {
	b.cfg.Notation.SafeMode = enabled
	return b
}

// WithSkipValidation applies moves without full legality checking.
func (b *ConfigBuilder) WithSkipValidation(skip bool) *ConfigBuilder {
	b.cfg.Notation.SkipValidation = skip
	return b
}

// WithNotifications logs applied moves and winners.
func (b *ConfigBuilder) WithNotifications(enabled bool) *ConfigBuilder {
	b.cfg.Notation.Notifications = enabled
	return b
}

// WithDisplaySize sets the display size.
func (b *ConfigBuilder) WithDisplaySize(size string) *ConfigBuilder {
	b.cfg.Display.Size = size
	return b
}

// WithAxisLabels enables axis labels.
func (b *ConfigBuilder) WithAxisLabels(enabled bool) *ConfigBuilder {
	b.cfg.Display.AxisLabels = enabled
	return b
}

// WithLogFile sets the diagnostics writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
