package main

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags() error = %v", err)
		}
		if cfg.Display.Size != config.SizeBig || !cfg.Display.AxisLabels || cfg.Display.Figurine {
			t.Errorf("Display = %+v; want big with labels", cfg.Display)
		}
		if cfg.Notation.Mismatch != config.MismatchError {
			t.Errorf("Mismatch = %v; want error", cfg.Notation.Mismatch)
		}
	})

	t.Run("display flags", func(t *testing.T) {
		defer saveRestoreString(displaySize, config.SizeSmall)()
		defer saveRestoreBool(noLabels, true)()
		defer saveRestoreBool(figurine, true)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags() error = %v", err)
		}
		if cfg.Display.Size != config.SizeSmall || cfg.Display.AxisLabels || !cfg.Display.Figurine {
			t.Errorf("Display = %+v; want small figurines without labels", cfg.Display)
		}
	})

	t.Run("bad size", func(t *testing.T) {
		defer saveRestoreString(displaySize, "huge")()
		if err := applyFlags(config.NewConfig()); err == nil {
			t.Error("applyFlags() should reject an unknown size")
		}
	})

	t.Run("bad mismatch mode", func(t *testing.T) {
		defer saveRestoreString(mismatchMode, "sometimes")()
		if err := applyFlags(config.NewConfig()); err == nil {
			t.Error("applyFlags() should reject an unknown mismatch mode")
		}
	})

	t.Run("verbosity", func(t *testing.T) {
		defer saveRestoreBool(verbose, true)()
		cfg := config.NewConfig()
		if err := applyFlags(cfg); err != nil {
			t.Fatalf("applyFlags() error = %v", err)
		}
		if cfg.Verbosity != 2 {
			t.Errorf("Verbosity = %d; want 2", cfg.Verbosity)
		}
	})
}
