package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// castleSquares are the origin and target squares of a castle.
type castleSquares struct {
	king, kingTo chess.Location
	rook, rookTo chess.Location
}

func castleGeometry(colour chess.Colour, side chess.CastleSide) castleSquares {
	r := colour.HomeRank()
	if side == chess.Kingside {
		return castleSquares{chess.Loc(4, r), chess.Loc(6, r), chess.Loc(7, r), chess.Loc(5, r)}
	}
	return castleSquares{chess.Loc(4, r), chess.Loc(2, r), chess.Loc(0, r), chess.Loc(3, r)}
}

// castleSideFor returns the side a king move from src to dst castles to, or
// NoCastle.
func castleSideFor(colour chess.Colour, src, dst chess.Location) chess.CastleSide {
	for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
		g := castleGeometry(colour, side)
		if src == g.king && dst == g.kingTo {
			return side
		}
	}
	return chess.NoCastle
}

func precondition(colour chess.Colour, side chess.CastleSide, format string, args ...interface{}) error {
	return fmt.Errorf("%v %v: %s: %w", colour, side, fmt.Sprintf(format, args...), errors.ErrPreconditionViolation)
}

// checkCastle returns nil if colour may castle on side. Neither piece may
// have moved and the squares between them must be empty. With checkAttacks
// the king must also not start on, pass through or land on an attacked square.
func checkCastle(p *chess.Position, colour chess.Colour, side chess.CastleSide, checkAttacks bool) error {
	g := castleGeometry(colour, side)

	king := p.At(g.king)
	if king.Kind != chess.King || king.Colour != colour || king.Moved {
		return precondition(colour, side, "king has moved")
	}
	rook := p.At(g.rook)
	if rook.Kind != chess.Rook || rook.Colour != colour || rook.Moved {
		return precondition(colour, side, "rook has moved")
	}
	for l := range chess.Between(g.rook, g.king, true) {
		if _, ok := p.PieceAt(l); ok {
			return precondition(colour, side, "%v is occupied", l)
		}
	}

	if !checkAttacks {
		return nil
	}
	if Attacked(p, g.king, colour) {
		return precondition(colour, side, "king is in check")
	}
	for l := range chess.Between(g.king, g.kingTo, true) {
		if Attacked(p, l, colour) {
			return precondition(colour, side, "king passes through attacked square %v", l)
		}
	}
	sim := *p
	castlePieces(&sim, g)
	if KingInCheck(&sim, colour) {
		return precondition(colour, side, "king lands on attacked square %v", g.kingTo)
	}
	return nil
}

// castlePieces relocates king and rook. Preconditions must already hold.
func castlePieces(p *chess.Position, g castleSquares) {
	king, rook := p.At(g.king), p.At(g.rook)
	king.Moved, rook.Moved = true, true
	_ = p.PlaceAt(g.king, chess.Piece{})
	_ = p.PlaceAt(g.rook, chess.Piece{})
	_ = p.PlaceAt(g.kingTo, king)
	_ = p.PlaceAt(g.rookTo, rook)
}

// ApplyCastle castles the side to move. If a precondition does not hold the
// board is left unchanged and the error wraps errors.ErrPreconditionViolation.
func ApplyCastle(b *chess.Board, side chess.CastleSide) error {
	_, err := applyCastle(b, side, true)
	return err
}

func applyCastle(b *chess.Board, side chess.CastleSide, validate bool) (chess.Move, error) {
	if side != chess.Kingside && side != chess.Queenside {
		return chess.Move{}, fmt.Errorf("castle side %d: %w", side, errors.ErrPreconditionViolation)
	}
	return castle(b, b.ToMove(), side, validate)
}

func castle(b *chess.Board, colour chess.Colour, side chess.CastleSide, validate bool) (chess.Move, error) {
	if err := checkCastle(&b.Position, colour, side, validate); err != nil {
		return chess.Move{}, err
	}

	g := castleGeometry(colour, side)
	m := chess.Move{
		Piece:  b.At(g.king),
		From:   g.king,
		To:     g.kingTo,
		Castle: side,
	}
	castlePieces(&b.Position, g)
	b.AdvanceTurn()
	m.Check = finishMove(b, validate)
	return m, nil
}
