package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrMalformedNotation", ErrMalformedNotation, ErrMalformedNotation},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrAmbiguousMove", ErrAmbiguousMove, ErrAmbiguousMove},
		{"ErrNoLegalSource", ErrNoLegalSource, ErrNoLegalSource},
		{"ErrOutOfRange", ErrOutOfRange, ErrOutOfRange},
		{"ErrPreconditionViolation", ErrPreconditionViolation, ErrPreconditionViolation},
		{"ErrNotALine", ErrNotALine, ErrNotALine},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrUnknownOption", ErrUnknownOption, ErrUnknownOption},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrGameNotFound", ErrGameNotFound, ErrGameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct verifies no two sentinels match each other
func TestSentinelErrors_Distinct(t *testing.T) {
	all := []error{
		ErrMalformedNotation, ErrIllegalMove, ErrAmbiguousMove, ErrNoLegalSource,
		ErrOutOfRange, ErrPreconditionViolation, ErrNotALine, ErrInvalidFEN,
		ErrUnknownOption, ErrInvalidConfig, ErrGameNotFound,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to apply Nf3: %w", ErrAmbiguousMove)

	if !errors.Is(wrapped, ErrAmbiguousMove) {
		t.Errorf("errors.Is(wrapped, ErrAmbiguousMove) = false, want true")
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:      ErrIllegalMove,
				GameID:   "abc",
				PlyNum:   12,
				MoveText: "Nxe5",
			},
			contains: []string{"game abc", "ply 12", "Nxe5", "illegal move"},
		},
		{
			name: "minimal context",
			err: &MoveError{
				Err: ErrNoLegalSource,
			},
			contains: []string{"no legal source"},
		},
		{
			name:     "no error",
			err:      &MoveError{PlyNum: 3},
			contains: []string{"ply 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:      ErrPreconditionViolation,
		PlyNum:   24,
		MoveText: "O-O-O",
	}

	wrapped := fmt.Errorf("replay failed: %w", moveErr)

	var extracted *MoveError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if extracted.PlyNum != 24 {
		t.Errorf("extracted.PlyNum = %d, want 24", extracted.PlyNum)
	}
	if !errors.Is(wrapped, ErrPreconditionViolation) {
		t.Error("errors.Is(wrapped, ErrPreconditionViolation) = false, want true")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrMalformedNotation,
		Text:     "Nz9",
		Column:   2,
		Expected: "square",
		Got:      "z",
	}

	msg := err.Error()
	for _, want := range []string{"Nz9", "column 2", "expected square, got z", "malformed notation"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ParseError.Error() = %q, should contain %q", msg, want)
		}
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{Err: ErrMalformedNotation, Text: "???"}

	if !errors.Is(parseErr, ErrMalformedNotation) {
		t.Error("errors.Is(parseErr, ErrMalformedNotation) = false, want true")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}

	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")
	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
