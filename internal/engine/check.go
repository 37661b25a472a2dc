package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// kindSet is a bitmask of piece kinds.
type kindSet uint8

func (s kindSet) has(k chess.Kind) bool {
	return s&(1<<k) != 0
}

const span = 2*chess.BoardSize - 1

// strikers[defender][dx+7][dy+7] holds the kinds that, belonging to the
// defender's opponent and standing at (dx, dy) from a square, attack that
// square when nothing is in between. Knights are left out; they are looked
// up directly.
var strikers [2][span][span]kindSet

func init() {
	for _, defender := range []chess.Colour{chess.Black, chess.White} {
		attacker := defender.Opposite()
		for k := chess.Pawn; k < chess.NumKinds; k++ {
			if k == chess.Knight {
				continue
			}
			p := chess.NewPiece(attacker, k)
			p.Moved = true
			for _, s := range chess.ShiftPatterns(p) {
				// Pawns never capture straight ahead.
				if k == chess.Pawn && s.DX == 0 {
					continue
				}
				d := s.Neg()
				strikers[defender][d.DX+chess.BoardSize-1][d.DY+chess.BoardSize-1] |= 1 << k
			}
		}
	}
}

// canStrike reports whether an opposing piece of kind k at displacement d
// from a square of the defender attacks it along an open line.
func canStrike(defender chess.Colour, d chess.Displacement, k chess.Kind) bool {
	x, y := d.DX+chess.BoardSize-1, d.DY+chess.BoardSize-1
	if x < 0 || x >= span || y < 0 || y >= span {
		return false
	}
	return strikers[defender][x][y].has(k)
}

var rayDirections = append(append([]chess.Displacement{}, chess.OrthogonalDirections...), chess.DiagonalDirections...)

// Attacked reports whether any piece not of the defender's colour attacks target.
func Attacked(p *chess.Position, target chess.Location, defender chess.Colour) bool {
	for _, dir := range rayDirections {
		for l := target.Add(dir); l.Valid(); l = l.Add(dir) {
			piece, ok := p.PieceAt(l)
			if !ok {
				continue
			}
			if piece.Colour != defender && canStrike(defender, l.Sub(target), piece.Kind) {
				return true
			}
			break
		}
	}

	for _, s := range chess.KnightShifts {
		piece, ok := p.PieceAt(target.Add(s))
		if ok && piece.Kind == chess.Knight && piece.Colour != defender {
			return true
		}
	}
	return false
}

// KingInCheck returns true if the colour's king is attacked. A side with no
// king on the board is never in check.
func KingInCheck(p *chess.Position, colour chess.Colour) bool {
	king := p.King(colour)
	if !king.Valid() {
		return false
	}
	return Attacked(p, king, colour)
}
