package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

func illegal(src, dst chess.Location, format string, args ...interface{}) error {
	return fmt.Errorf("%v-%v: %s: %w", src, dst, fmt.Sprintf(format, args...), errors.ErrIllegalMove)
}

// IsLegal reports whether the piece on src may move to dst for the side to move.
func IsLegal(b *chess.Board, src, dst chess.Location, checkSelf bool) bool {
	return Validate(b, src, dst, checkSelf) == nil
}

// Validate returns nil if the piece on src may move to dst, or an error
// wrapping errors.ErrIllegalMove saying why not. With checkSelf the move is
// also simulated and rejected if it leaves the mover's king attacked.
func Validate(b *chess.Board, src, dst chess.Location, checkSelf bool) error {
	return validate(&b.Position, b.ToMove(), src, dst, checkSelf)
}

// validate checks a move by the given side to move.
func validate(p *chess.Position, toMove chess.Colour, src, dst chess.Location, checkSelf bool) error {
	piece, ok := p.PieceAt(src)
	if !ok {
		return illegal(src, dst, "no piece on %v", src)
	}
	if !dst.Valid() {
		return illegal(src, dst, "destination off the board")
	}

	d := dst.Sub(src)
	if !chess.HasShift(piece, d) {
		return illegal(src, dst, "%v cannot move by (%d,%d)", piece, d.DX, d.DY)
	}
	if piece.Colour != toMove {
		return illegal(src, dst, "not %v's turn", piece.Colour)
	}

	target := p.At(dst)
	switch piece.Kind {
	case chess.Knight:
		if !target.IsEmpty() && target.Colour == piece.Colour {
			return illegal(src, dst, "%v is occupied by own piece", dst)
		}
	case chess.King:
		if d.DX == 2 || d.DX == -2 {
			side := castleSideFor(piece.Colour, src, dst)
			if side == chess.NoCastle {
				return illegal(src, dst, "king moves two squares only when castling")
			}
			if err := checkCastle(p, piece.Colour, side, checkSelf); err != nil {
				return fmt.Errorf("%w: %w", errors.ErrIllegalMove, err)
			}
			return nil
		}
		if err := checkLanding(piece, target, d, src, dst); err != nil {
			return err
		}
	case chess.Pawn, chess.Bishop, chess.Rook, chess.Queen:
		if err := checkPath(p, src, dst); err != nil {
			return err
		}
		if err := checkLanding(piece, target, d, src, dst); err != nil {
			return err
		}
	case chess.NoKind, chess.NumKinds:
		return illegal(src, dst, "no piece on %v", src)
	}

	if checkSelf {
		sim := *p
		if err := sim.RawMove(src, dst, true); err != nil {
			return err
		}
		if KingInCheck(&sim, piece.Colour) {
			return illegal(src, dst, "leaves the %v king in check", piece.Colour)
		}
	}
	return nil
}

// checkPath fails if any square strictly between src and dst is occupied.
func checkPath(p *chess.Position, src, dst chess.Location) error {
	for l := range chess.Between(src, dst, true) {
		if _, ok := p.PieceAt(l); ok {
			return illegal(src, dst, "blocked at %v", l)
		}
	}
	return nil
}

// checkLanding applies the capture rules for the final square.
func checkLanding(piece, target chess.Piece, d chess.Displacement, src, dst chess.Location) error {
	own := !target.IsEmpty() && target.Colour == piece.Colour
	enemy := !target.IsEmpty() && target.Colour != piece.Colour

	if piece.Kind == chess.Pawn {
		if d.DX == 0 && !target.IsEmpty() {
			return illegal(src, dst, "pawns cannot capture straight ahead")
		}
		if d.DX != 0 && !enemy {
			return illegal(src, dst, "pawn diagonal needs a piece to capture")
		}
		return nil
	}
	if own {
		return illegal(src, dst, "%v is occupied by own piece", dst)
	}
	return nil
}
