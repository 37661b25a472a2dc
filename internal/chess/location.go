package chess

import (
	"fmt"
	"iter"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Location is a square on the board addressed by file (0 = a) and rank (0 = 1).
// Arithmetic may produce locations off the board; check Valid before indexing.
type Location struct {
	File int
	Rank int
}

// Displacement is the difference between two locations.
type Displacement struct {
	DX int
	DY int
}

// Loc builds a Location from file and rank indices.
func Loc(file, rank int) Location {
	return Location{File: file, Rank: rank}
}

// ParseLocation converts an algebraic square name such as "e4".
func ParseLocation(name string) (Location, error) {
	if len(name) != 2 {
		return Location{}, fmt.Errorf("square %q: %w", name, errors.ErrOutOfRange)
	}
	l := Location{File: int(name[0]) - 'a', Rank: int(name[1]) - '1'}
	if !l.Valid() {
		return Location{}, fmt.Errorf("square %q: %w", name, errors.ErrOutOfRange)
	}
	return l, nil
}

// MustParseLocation is ParseLocation for constant names. It panics on error.
func MustParseLocation(name string) Location {
	l, err := ParseLocation(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Valid reports whether both components are in [0,7].
func (l Location) Valid() bool {
	return l.File >= 0 && l.File < BoardSize && l.Rank >= 0 && l.Rank < BoardSize
}

// String returns the algebraic name of the square.
func (l Location) String() string {
	if !l.Valid() {
		return fmt.Sprintf("(%d,%d)", l.File, l.Rank)
	}
	return string([]byte{byte('a' + l.File), byte('1' + l.Rank)})
}

// Add shifts the location by d.
func (l Location) Add(d Displacement) Location {
	return Location{File: l.File + d.DX, Rank: l.Rank + d.DY}
}

// Sub returns the displacement that takes other to l.
func (l Location) Sub(other Location) Displacement {
	return Displacement{DX: l.File - other.File, DY: l.Rank - other.Rank}
}

// Neg returns the opposite displacement.
func (d Displacement) Neg() Displacement {
	return Displacement{DX: -d.DX, DY: -d.DY}
}

// Scale multiplies both components by n.
func (d Displacement) Scale(n int) Displacement {
	return Displacement{DX: d.DX * n, DY: d.DY * n}
}

// Unit returns the signed unit step along each axis independently.
func (d Displacement) Unit() Displacement {
	return Displacement{DX: sign(d.DX), DY: sign(d.DY)}
}

// Norm returns the Chebyshev norm, the number of king steps d spans.
func (d Displacement) Norm() int {
	return max(abs(d.DX), abs(d.DY))
}

// IsLine reports whether d is horizontal, vertical or diagonal.
func (d Displacement) IsLine() bool {
	return d.DX == 0 || d.DY == 0 || abs(d.DX) == abs(d.DY)
}

// Decompose returns the unit multiples u, 2u, ..., n·u that trace the path
// from a source to source+d. Only line displacements decompose.
func (d Displacement) Decompose() ([]Displacement, error) {
	if !d.IsLine() {
		return nil, fmt.Errorf("decompose (%d,%d): %w", d.DX, d.DY, errors.ErrNotALine)
	}
	u := d.Unit()
	n := d.Norm()
	steps := make([]Displacement, 0, n)
	for i := 1; i <= n; i++ {
		steps = append(steps, u.Scale(i))
	}
	return steps, nil
}

// Between yields the squares on the line from a towards b, excluding a and
// including b unless excludeLast is set. Nothing is yielded when a and b are
// not on a common line.
func Between(a, b Location, excludeLast bool) iter.Seq[Location] {
	return func(yield func(Location) bool) {
		steps, err := b.Sub(a).Decompose()
		if err != nil {
			return
		}
		if excludeLast && len(steps) > 0 {
			steps = steps[:len(steps)-1]
		}
		for _, s := range steps {
			if !yield(a.Add(s)) {
				return
			}
		}
	}
}

// AllLocations yields the 64 squares, a1, b1, ... h8.
func AllLocations() iter.Seq[Location] {
	return func(yield func(Location) bool) {
		for rank := 0; rank < BoardSize; rank++ {
			for file := 0; file < BoardSize; file++ {
				if !yield(Location{File: file, Rank: rank}) {
					return
				}
			}
		}
	}
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
