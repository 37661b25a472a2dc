package engine

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// SAN returns the algebraic notation of m as played on before, the board as
// it stood before the move. The source square is added only as far as it is
// needed to tell m apart from another legal move to the same square.
func SAN(before *chess.Board, m chess.Move) string {
	if m.IsCastle() {
		return m.Castle.String() + m.Check.Suffix()
	}

	var sb strings.Builder
	if m.Piece.Kind == chess.Pawn {
		if m.From.File != m.To.File {
			sb.WriteByte(byte('a' + m.From.File))
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion.Letter())
		}
	} else {
		sb.WriteByte(m.Piece.Kind.Letter())
		sb.WriteString(disambiguation(before, m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}
	sb.WriteString(m.Check.Suffix())
	return sb.String()
}

// disambiguation returns the file, rank or square of m's source needed to
// rule out every other piece of the same kind that could also reach m.To.
func disambiguation(before *chess.Board, m chess.Move) string {
	sameFile, sameRank, rivals := false, false, false
	for _, src := range LegalMovesTo(before, m.To) {
		if src == m.From || before.At(src).Kind != m.Piece.Kind {
			continue
		}
		rivals = true
		sameFile = sameFile || src.File == m.From.File
		sameRank = sameRank || src.Rank == m.From.Rank
	}
	switch {
	case !rivals:
		return ""
	case !sameFile:
		return m.From.String()[:1]
	case !sameRank:
		return m.From.String()[1:]
	}
	return m.From.String()
}
