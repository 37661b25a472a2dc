package config

import (
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// AllOptions can be passed to ResetOption to reset every option.
const AllOptions = "*"

// option binds a dotted key to the field it reads and writes.
type option struct {
	get   func(c *Config) string
	set   func(c *Config, v string) error
	reset func(c *Config, def *Config)
}

func boolOption(field func(c *Config) *bool) option {
	return option{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("value %q: %w", v, errors.ErrInvalidConfig)
			}
			*field(c) = b
			return nil
		},
		reset: func(c, def *Config) { *field(c) = *field(def) },
	}
}

var options = map[string]option{
	"display.size": {
		get: func(c *Config) string { return c.Display.Size },
		set: func(c *Config, v string) error {
			if !slices.Contains(displaySizes, v) {
				return fmt.Errorf("display size %q: %w", v, errors.ErrInvalidConfig)
			}
			c.Display.Size = v
			return nil
		},
		reset: func(c, def *Config) { c.Display.Size = def.Display.Size },
	},
	"display.axis_labels": boolOption(func(c *Config) *bool { return &c.Display.AxisLabels }),
	"display.figurine":    boolOption(func(c *Config) *bool { return &c.Display.Figurine }),
	"api.notation_mismatch": {
		// Reads report the effective mode.
		get: func(c *Config) string { return c.Notation.EffectiveMismatch().String() },
		set: func(c *Config, v string) error {
			m, err := ParseMismatchMode(v)
			if err != nil {
				return err
			}
			c.Notation.Mismatch = m
			return nil
		},
		reset: func(c, def *Config) { c.Notation.Mismatch = def.Notation.Mismatch },
	},
	"api.safe_mode":       boolOption(func(c *Config) *bool { return &c.Notation.SafeMode }),
	"api.skip_validation": boolOption(func(c *Config) *bool { return &c.Notation.SkipValidation }),
	"api.notifications":   boolOption(func(c *Config) *bool { return &c.Notation.Notifications }),
}

// OptionKeys returns the known option keys in sorted order.
func OptionKeys() []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookup(key string) (option, error) {
	opt, ok := options[key]
	if !ok {
		return option{}, fmt.Errorf("option %q: %w", key, errors.ErrUnknownOption)
	}
	return opt, nil
}

// Option returns the value of a named option.
func (c *Config) Option(key string) (string, error) {
	opt, err := lookup(key)
	if err != nil {
		return "", err
	}
	return opt.get(c), nil
}

// SetOption sets a named option from its string form.
func (c *Config) SetOption(key, value string) error {
	opt, err := lookup(key)
	if err != nil {
		return err
	}
	if err := opt.set(c, value); err != nil {
		return fmt.Errorf("option %q: %w", key, err)
	}
	return nil
}

// ResetOption restores a named option, or every option for AllOptions, to
// its default.
func (c *Config) ResetOption(key string) error {
	def := NewConfig()
	if key == AllOptions {
		for _, opt := range options {
			opt.reset(c, def)
		}
		return nil
	}
	opt, err := lookup(key)
	if err != nil {
		return err
	}
	opt.reset(c, def)
	return nil
}
