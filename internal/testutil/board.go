package testutil

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
)

// ParsePlacement reads a placement such as "Ke1" (white king on e1), "pd7"
// (black pawn on d7) or "Ra1*" (white rook on a1 that has already moved).
// Upper case letters are White and lower case are Black, as in FEN.
func ParsePlacement(text string) (chess.Location, chess.Piece, error) {
	s := strings.TrimSuffix(text, "*")
	moved := s != text
	if len(s) != 3 {
		return chess.Location{}, chess.Piece{}, fmt.Errorf("placement %q: want letter and square", text)
	}
	kind, ok := chess.KindFromLetter(s[0])
	if !ok {
		return chess.Location{}, chess.Piece{}, fmt.Errorf("placement %q: unknown piece letter", text)
	}
	loc, err := chess.ParseLocation(s[1:])
	if err != nil {
		return chess.Location{}, chess.Piece{}, fmt.Errorf("placement %q: %w", text, err)
	}
	colour := chess.White
	if s[0] >= 'a' && s[0] <= 'z' {
		colour = chess.Black
	}
	p := chess.NewPiece(colour, kind)
	p.Moved = moved
	return loc, p, nil
}

// BuildBoard creates a board with White to move holding only the given pieces.
func BuildBoard(placements ...string) (*chess.Board, error) {
	b := chess.NewBoard()
	for _, text := range placements {
		loc, p, err := ParsePlacement(text)
		if err != nil {
			return nil, err
		}
		if err := b.PlaceAt(loc, p); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// MustBuildBoard is BuildBoard for test setup. It calls t.Fatal on error.
func MustBuildBoard(t *testing.T, placements ...string) *chess.Board {
	t.Helper()
	b, err := BuildBoard(placements...)
	if err != nil {
		t.Fatalf("failed to build test board: %v", err)
	}
	return b
}

// BlackToMove sets the move counter so that Black is to move.
func BlackToMove(b *chess.Board) *chess.Board {
	b.SetMoveCount(1)
	return b
}

// QuietConfig returns a default configuration that logs nowhere.
func QuietConfig() *config.Config {
	return config.NewConfigBuilder().WithLogFile(io.Discard).WithVerbosity(0).Build()
}

// SquareNames converts locations to sorted algebraic names for comparison.
func SquareNames(locs []chess.Location) []string {
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.String())
	}
	slices.Sort(names)
	return names
}

// AssertBoardsEqual compares placement and move count, reporting the
// differing squares by name.
func AssertBoardsEqual(t *testing.T, got, want *chess.Board, msgAndArgs ...interface{}) {
	t.Helper()
	var diffs []string
	for l := range chess.AllLocations() {
		if g, w := got.At(l), want.At(l); g != w {
			diffs = append(diffs, fmt.Sprintf("%v: got %v, want %v", l, g, w))
		}
	}
	if got.MoveCount() != want.MoveCount() {
		diffs = append(diffs, fmt.Sprintf("move count: got %d, want %d", got.MoveCount(), want.MoveCount()))
	}
	if len(diffs) > 0 {
		fail(t, msgAndArgs, "boards differ:\n%s", strings.Join(diffs, "\n"))
	}
}
