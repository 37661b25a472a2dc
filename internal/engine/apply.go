package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ApplyMove moves the piece on src to dst. When validate is true the move
// must pass Validate (including the self-check test) or the board is left
// unchanged and an error wrapping errors.ErrIllegalMove is returned; after a
// validated move the side now to move is tested for checkmate and the winner
// recorded. A king moving two files from its origin castles. A pawn reaching
// the last rank becomes a queen.
func ApplyMove(b *chess.Board, src, dst chess.Location, validate bool) error {
	_, err := applyMove(b, src, dst, chess.NoKind, validate)
	return err
}

// ApplyPromotion is ApplyMove for a pawn reaching the last rank, promoting
// it to the given kind.
func ApplyPromotion(b *chess.Board, src, dst chess.Location, promotion chess.Kind, validate bool) error {
	_, err := applyMove(b, src, dst, promotion, validate)
	return err
}

// MakeMove is ApplyPromotion that also returns the move as applied. Pass
// chess.NoKind for the default promotion.
func MakeMove(b *chess.Board, src, dst chess.Location, promotion chess.Kind, validate bool) (chess.Move, error) {
	return applyMove(b, src, dst, promotion, validate)
}

func applyMove(b *chess.Board, src, dst chess.Location, promotion chess.Kind, validate bool) (chess.Move, error) {
	piece, ok := b.PieceAt(src)
	if !ok {
		return chess.Move{}, illegal(src, dst, "no piece on %v", src)
	}

	if piece.Kind == chess.King && !piece.Moved {
		if side := castleSideFor(piece.Colour, src, dst); side != chess.NoCastle {
			if validate {
				if err := Validate(b, src, dst, true); err != nil {
					return chess.Move{}, err
				}
			}
			return castle(b, piece.Colour, side, validate)
		}
	}

	if validate {
		if err := Validate(b, src, dst, true); err != nil {
			return chess.Move{}, err
		}
	}

	promotion, err := promotionFor(piece, src, dst, promotion)
	if err != nil {
		return chess.Move{}, err
	}

	m := chess.Move{
		Piece:     piece,
		From:      src,
		To:        dst,
		Captured:  b.At(dst),
		Promotion: promotion,
	}
	if err := b.RawMove(src, dst, true); err != nil {
		return chess.Move{}, err
	}
	moved := piece
	moved.Moved = true
	if promotion != chess.NoKind {
		moved.Kind = promotion
	}
	_ = b.PlaceAt(dst, moved)
	b.AdvanceTurn()

	m.Check = finishMove(b, validate)
	return m, nil
}

// promotionFor decides what a moving piece becomes. Pawns reaching the last
// rank default to a queen; asking for a promotion anywhere else is illegal.
func promotionFor(piece chess.Piece, src, dst chess.Location, requested chess.Kind) (chess.Kind, error) {
	lastRank := piece.Kind == chess.Pawn && dst.Rank == piece.Colour.Opposite().HomeRank()
	if !lastRank {
		if requested != chess.NoKind {
			return chess.NoKind, illegal(src, dst, "%v cannot promote here", piece)
		}
		return chess.NoKind, nil
	}
	switch requested {
	case chess.NoKind:
		return chess.Queen, nil
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		return requested, nil
	case chess.Pawn, chess.King, chess.NumKinds:
	}
	return chess.NoKind, illegal(src, dst, "cannot promote to %v", requested)
}
