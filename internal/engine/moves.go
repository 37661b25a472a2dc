package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// promotionKinds are offered, in this order, for a pawn reaching the last rank.
var promotionKinds = []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// destinations returns every square the piece on src can legally reach with
// colour to move.
func destinations(p *chess.Position, colour chess.Colour, src chess.Location) []chess.Location {
	piece, ok := p.PieceAt(src)
	if !ok || piece.Colour != colour {
		return nil
	}
	var out []chess.Location
	for _, d := range chess.ShiftPatterns(piece) {
		dst := src.Add(d)
		if !dst.Valid() {
			continue
		}
		if validate(p, colour, src, dst, true) == nil {
			out = append(out, dst)
		}
	}
	return out
}

// LegalMovesFrom returns the squares the piece on src can legally move to.
// It is empty when src is empty or holds a piece of the side not to move.
func LegalMovesFrom(b *chess.Board, src chess.Location) []chess.Location {
	return destinations(&b.Position, b.ToMove(), src)
}

// LegalMovesTo returns the squares holding a piece of the side to move that
// can legally move to dst.
func LegalMovesTo(b *chess.Board, dst chess.Location) []chess.Location {
	var out []chess.Location
	for src := range chess.AllLocations() {
		if piece, ok := b.PieceAt(src); !ok || piece.Colour != b.ToMove() {
			continue
		}
		if Validate(b, src, dst, true) == nil {
			out = append(out, src)
		}
	}
	return out
}

// AllLegalMoves returns every legal move for colour, whether or not it is
// colour's turn. Pawn moves to the last rank are listed once per promotion kind.
func AllLegalMoves(b *chess.Board, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	for src := range chess.AllLocations() {
		piece, ok := b.PieceAt(src)
		if !ok || piece.Colour != colour {
			continue
		}
		for _, dst := range destinations(&b.Position, colour, src) {
			m := chess.Move{
				Piece:    piece,
				From:     src,
				To:       dst,
				Captured: b.At(dst),
			}
			if piece.Kind == chess.King {
				m.Castle = castleSideFor(colour, src, dst)
			}
			if piece.Kind == chess.Pawn && dst.Rank == colour.Opposite().HomeRank() {
				for _, k := range promotionKinds {
					m.Promotion = k
					moves = append(moves, m)
				}
				continue
			}
			moves = append(moves, m)
		}
	}
	return moves
}

// HasLegalMoves returns true if colour has at least one legal move.
func HasLegalMoves(b *chess.Board, colour chess.Colour) bool {
	for src := range chess.AllLocations() {
		piece, ok := b.PieceAt(src)
		if !ok || piece.Colour != colour {
			continue
		}
		for _, d := range chess.ShiftPatterns(piece) {
			dst := src.Add(d)
			if dst.Valid() && validate(&b.Position, colour, src, dst, true) == nil {
				return true
			}
		}
	}
	return false
}
