package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsCheckmate returns true if colour's king is in check and colour has no legal move.
func IsCheckmate(b *chess.Board, colour chess.Colour) bool {
	return KingInCheck(&b.Position, colour) && !HasLegalMoves(b, colour)
}

// IsStalemate returns true if colour is not in check but has no legal move.
// Stalemate is reported, never declared as a result.
func IsStalemate(b *chess.Board, colour chess.Colour) bool {
	return !KingInCheck(&b.Position, colour) && !HasLegalMoves(b, colour)
}

// ResolveWinner returns the winner of the game: the one recorded when a
// validated move delivered mate, or otherwise the opponent of a side that is
// checkmated on the board.
func ResolveWinner(b *chess.Board) (chess.Colour, bool) {
	if w, ok := b.Winner(); ok {
		return w, true
	}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if IsCheckmate(b, c) {
			return c.Opposite(), true
		}
	}
	return chess.Black, false
}

// finishMove reports the check status of the side now to move. Checkmate is
// only looked for when the move was validated, and records the winner.
func finishMove(b *chess.Board, validate bool) chess.CheckStatus {
	next := b.ToMove()
	if !KingInCheck(&b.Position, next) {
		return chess.NoCheck
	}
	if validate && !HasLegalMoves(b, next) {
		b.DeclareWinner(next.Opposite())
		return chess.Checkmate
	}
	return chess.Check
}
