package config

import (
	"fmt"
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Display sizes understood by board renderers.
const (
	SizeBig    = "big"
	SizeMedium = "medium"
	SizeSmall  = "small"
)

var displaySizes = []string{SizeBig, SizeMedium, SizeSmall}

// DisplayConfig holds settings for whatever renders the board. The engine
// never reads them.
type DisplayConfig struct {
	// Size is one of SizeBig, SizeMedium or SizeSmall.
	Size string

	// AxisLabels draws file letters and rank numbers around the grid.
	AxisLabels bool

	// Figurine uses chess symbols instead of letters.
	Figurine bool
}

// NewDisplayConfig creates a DisplayConfig with default values.
func NewDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		Size:       SizeBig,
		AxisLabels: true,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	if !slices.Contains(displaySizes, d.Size) {
		return fmt.Errorf("display size %q: %w", d.Size, errors.ErrInvalidConfig)
	}
	return nil
}
