package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// NoLocation marks a king that is not on the board.
var NoLocation = Location{File: -1, Rank: -1}

// Position is the placement state of a board: the piece grid and the cached
// king squares. It is a plain value, so assigning it makes an independent
// copy that can be mutated speculatively.
type Position struct {
	// squares[file][rank]
	squares [BoardSize][BoardSize]Piece

	// Keep track of where the two kings are for check detection.
	// Indexed by Colour.
	kings [2]Location
}

// At returns the piece on l, or the empty piece when l is empty or off the board.
func (p *Position) At(l Location) Piece {
	if !l.Valid() {
		return Piece{}
	}
	return p.squares[l.File][l.Rank]
}

// PieceAt returns the piece on l and whether there is one.
func (p *Position) PieceAt(l Location) (Piece, bool) {
	piece := p.At(l)
	return piece, !piece.IsEmpty()
}

// PieceAtName looks a square up by algebraic name.
func (p *Position) PieceAtName(name string) (Piece, bool, error) {
	l, err := ParseLocation(name)
	if err != nil {
		return Piece{}, false, err
	}
	piece, ok := p.PieceAt(l)
	return piece, ok, nil
}

// PlaceAt puts piece on l, replacing whatever was there. Placing a king
// updates the king cache; placing the empty piece clears the square.
func (p *Position) PlaceAt(l Location, piece Piece) error {
	if !l.Valid() {
		return fmt.Errorf("place at %v: %w", l, errors.ErrOutOfRange)
	}
	old := p.squares[l.File][l.Rank]
	if old.Kind == King && p.kings[old.Colour] == l {
		p.kings[old.Colour] = NoLocation
	}
	p.squares[l.File][l.Rank] = piece
	if piece.Kind == King {
		p.kings[piece.Colour] = l
	}
	return nil
}

// RawMove relocates the piece on src to dst without any rule checking. It
// fails if src is empty, either square is off the board, or dst is occupied
// and overwrite is false. The king cache follows a moving king.
func (p *Position) RawMove(src, dst Location, overwrite bool) error {
	if !src.Valid() || !dst.Valid() {
		return fmt.Errorf("move %v to %v: %w", src, dst, errors.ErrOutOfRange)
	}
	piece := p.squares[src.File][src.Rank]
	if piece.IsEmpty() {
		return fmt.Errorf("move from empty square %v: %w", src, errors.ErrIllegalMove)
	}
	if !overwrite && !p.squares[dst.File][dst.Rank].IsEmpty() {
		return fmt.Errorf("location %v is not empty: %w", dst, errors.ErrIllegalMove)
	}
	captured := p.squares[dst.File][dst.Rank]
	if captured.Kind == King && p.kings[captured.Colour] == dst {
		p.kings[captured.Colour] = NoLocation
	}
	p.squares[src.File][src.Rank] = Piece{}
	p.squares[dst.File][dst.Rank] = piece
	if piece.Kind == King {
		p.kings[piece.Colour] = dst
	}
	return nil
}

// King returns the cached square of the colour's king, or NoLocation.
func (p *Position) King(c Colour) Location {
	return p.kings[c]
}

// Clear empties every square and forgets both kings.
func (p *Position) Clear() {
	p.squares = [BoardSize][BoardSize]Piece{}
	p.kings = [2]Location{NoLocation, NoLocation}
}

// IsEmpty reports whether no square holds a piece.
func (p *Position) IsEmpty() bool {
	for l := range AllLocations() {
		if _, ok := p.PieceAt(l); ok {
			return false
		}
	}
	return true
}

// Oriented returns the grid as a display would draw it: rank 8 first, and
// file a first within each rank.
func (p *Position) Oriented() [BoardSize][BoardSize]Piece {
	var out [BoardSize][BoardSize]Piece
	for row := 0; row < BoardSize; row++ {
		for file := 0; file < BoardSize; file++ {
			out[row][file] = p.squares[file][BoardSize-1-row]
		}
	}
	return out
}
