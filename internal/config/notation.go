package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MismatchMode says what to do when notation disagrees with the board, for
// example a pawn capture written without "x".
type MismatchMode int

const (
	MismatchError MismatchMode = iota // reject the move
	MismatchWarn                      // log a warning and carry on
	MismatchIgnore                    // carry on silently
)

var mismatchNames = []string{"error", "warn", "ignore"}

// String returns the option value for the mode.
func (m MismatchMode) String() string {
	if m >= 0 && int(m) < len(mismatchNames) {
		return mismatchNames[m]
	}
	return "unknown"
}

// ParseMismatchMode converts an option value to a MismatchMode.
func ParseMismatchMode(s string) (MismatchMode, error) {
	for i, name := range mismatchNames {
		if s == name {
			return MismatchMode(i), nil
		}
	}
	return MismatchError, fmt.Errorf("notation mismatch mode %q: %w", s, errors.ErrInvalidConfig)
}

// NotationConfig holds settings for reading and dispatching move notation.
type NotationConfig struct {
	// Mismatch is the requested handling of notation/board disagreements.
	Mismatch MismatchMode

	// SafeMode enables mismatch checking at all. With it off the effective
	// mode is always MismatchIgnore.
	SafeMode bool

	// SkipValidation applies moves without the self-check test and without
	// checkmate evaluation.
	SkipValidation bool

	// Notifications logs applied moves and declared winners at info level.
	Notifications bool
}

// NewNotationConfig creates a NotationConfig with default values.
func NewNotationConfig() *NotationConfig {
	return &NotationConfig{
		Mismatch: MismatchError,
		SafeMode: true,
	}
}

// EffectiveMismatch returns the mismatch mode that applies once SafeMode is
// taken into account.
func (n *NotationConfig) EffectiveMismatch() MismatchMode {
	if !n.SafeMode {
		return MismatchIgnore
	}
	return n.Mismatch
}

// Validate checks that the notation configuration is valid.
func (n *NotationConfig) Validate() error {
	if n.Mismatch < MismatchError || n.Mismatch > MismatchIgnore {
		return fmt.Errorf("notation mismatch mode %d: %w", n.Mismatch, errors.ErrInvalidConfig)
	}
	return nil
}
