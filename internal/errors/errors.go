// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrMalformedNotation indicates a move string that does not match the move grammar.
	ErrMalformedNotation = errors.New("malformed notation")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAmbiguousMove indicates notation that fits two or more legal source squares.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrNoLegalSource indicates notation that no piece on the board can satisfy.
	ErrNoLegalSource = errors.New("no legal source square")

	// ErrOutOfRange indicates a coordinate outside the 8x8 field.
	ErrOutOfRange = errors.New("location out of range")

	// ErrPreconditionViolation indicates castling was requested while its
	// preconditions do not hold.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrNotALine indicates a displacement that is neither horizontal,
	// vertical nor diagonal.
	ErrNotALine = errors.New("displacement is not a straight line")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrUnknownOption indicates a configuration key that does not exist.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates a game id that is not registered.
	ErrGameNotFound = errors.New("game not found")
)

// MoveError is a failed move with its place in the game: the game id, the
// 1-based ply and the move text. Zero fields are left out of the message.
type MoveError struct {
	Err      error
	GameID   string
	PlyNum   int
	MoveText string
}

func (e *MoveError) Error() string {
	var sb strings.Builder
	sep := func() {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
	}
	if e.GameID != "" {
		fmt.Fprintf(&sb, "game %s", e.GameID)
	}
	if e.PlyNum > 0 {
		sep()
		fmt.Fprintf(&sb, "ply %d", e.PlyNum)
	}
	if e.MoveText != "" {
		sep()
		fmt.Fprintf(&sb, "move %q", e.MoveText)
	}
	return withCause(sb.String(), e.Err, "move error")
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError is move notation that does not fit the grammar. Column is the
// 1-based position of the offending character, 0 when unknown.
type ParseError struct {
	Err      error
	Text     string
	Column   int
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.Text != "" {
		fmt.Fprintf(&sb, "%q", e.Text)
		if e.Column > 0 {
			fmt.Fprintf(&sb, " at column %d", e.Column)
		}
	}
	var detail string
	switch {
	case e.Expected != "" && e.Got != "":
		detail = fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	case e.Expected != "":
		detail = "expected " + e.Expected
	case e.Got != "":
		detail = "unexpected " + e.Got
	}
	if detail != "" {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}
		sb.WriteString(detail)
	}
	return withCause(sb.String(), e.Err, "parse error")
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// withCause joins a context prefix and an underlying error, falling back to
// fallback when both are empty.
func withCause(context string, err error, fallback string) string {
	switch {
	case err != nil && context != "":
		return context + ": " + err.Error()
	case err != nil:
		return err.Error()
	case context != "":
		return context
	}
	return fallback
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
