package chess

import "slices"

// Unit directions, orthogonal first.
var (
	OrthogonalDirections = []Displacement{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	DiagonalDirections   = []Displacement{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	KnightShifts         = []Displacement{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
)

// CastleShifts are the king displacements that request castling.
var CastleShifts = []Displacement{{2, 0}, {-2, 0}}

// Static pattern tables for the kinds whose patterns never change.
var (
	bishopShifts []Displacement
	rookShifts   []Displacement
	queenShifts  []Displacement
	kingShifts   []Displacement
)

func init() {
	bishopShifts = rays(DiagonalDirections)
	rookShifts = rays(OrthogonalDirections)
	queenShifts = append(slices.Clone(bishopShifts), rookShifts...)
	kingShifts = append(slices.Clone(OrthogonalDirections), DiagonalDirections...)
}

// rays expands unit directions to every distance up to 7.
func rays(dirs []Displacement) []Displacement {
	out := make([]Displacement, 0, len(dirs)*(BoardSize-1))
	for _, d := range dirs {
		for n := 1; n < BoardSize; n++ {
			out = append(out, d.Scale(n))
		}
	}
	return out
}

// ShiftPatterns returns every displacement p could make on an empty board,
// ignoring occupancy and check. The result must not be modified.
func ShiftPatterns(p Piece) []Displacement {
	switch p.Kind {
	case Pawn:
		f := p.Colour.Forward()
		shifts := []Displacement{{-1, f}, {1, f}, {0, f}}
		if !p.Moved {
			shifts = append(shifts, Displacement{0, 2 * f})
		}
		return shifts
	case Knight:
		return KnightShifts
	case Bishop:
		return bishopShifts
	case Rook:
		return rookShifts
	case Queen:
		return queenShifts
	case King:
		if p.Moved {
			return kingShifts
		}
		return append(slices.Clone(kingShifts), CastleShifts...)
	case NoKind, NumKinds:
		return nil
	}
	return nil
}

// HasShift reports whether d is one of p's shift patterns.
func HasShift(p Piece, d Displacement) bool {
	return slices.Contains(ShiftPatterns(p), d)
}

// CaptureHint says what a reverse shift implies about capturing.
type CaptureHint int

const (
	CaptureEither    CaptureHint = iota // any move of the kind may capture or not
	CaptureRequired                     // only reachable by capturing (pawn diagonal)
	CaptureForbidden                    // only reachable without capturing (pawn advance)
)

// ReverseShift is a displacement from a destination back to a candidate source.
type ReverseShift struct {
	Back Displacement
	Hint CaptureHint
}

// ReverseShifts lists the displacements from a destination back to the
// squares a piece of the given kind and colour could have come from. The
// piece is assumed unmoved so the result is a superset; castling shifts are
// excluded.
func ReverseShifts(kind Kind, colour Colour) []ReverseShift {
	p := NewPiece(colour, kind)
	var out []ReverseShift
	for _, s := range ShiftPatterns(p) {
		hint := CaptureEither
		switch kind {
		case Pawn:
			if s.DX != 0 {
				hint = CaptureRequired
			} else {
				hint = CaptureForbidden
			}
		case King:
			if slices.Contains(CastleShifts, s) {
				continue
			}
		case Knight, Bishop, Rook, Queen, NoKind, NumKinds:
		}
		out = append(out, ReverseShift{Back: s.Neg(), Hint: hint})
	}
	return out
}
