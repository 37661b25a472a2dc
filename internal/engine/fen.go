// Package engine implements the rules of chess on top of the chess package:
// move legality, check and checkmate detection, castling, move application,
// dispatch of algebraic notation, and FEN interchange.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string. Moved flags are derived
// from the castling field and the pawn start ranks. The en passant field is
// accepted but ignored.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}

	black, err := parseSideToMove(parts)
	if err != nil {
		return nil, err
	}

	rights, err := parseCastlingRights(parts)
	if err != nil {
		return nil, err
	}
	markMoved(board, rights)

	fullmove, err := parseFullmove(parts)
	if err != nil {
		return nil, err
	}
	count := (fullmove - 1) * 2
	if black {
		count++
	}
	board.SetMoveCount(count)

	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("%d ranks in placement: %w", len(ranks), errors.ErrInvalidFEN)
	}

	var kings [2]int
	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				kind, ok := chess.KindFromLetter(byte(c))
				if !ok {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if file >= chess.BoardSize {
					return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
				}
				colour := chess.White
				if c >= 'a' && c <= 'z' {
					colour = chess.Black
				}
				if kind == chess.King {
					kings[colour]++
				}
				_ = board.PlaceAt(chess.Loc(file, rank), chess.NewPiece(colour, kind))
				file++
			}
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("want one king of each colour: %w", errors.ErrInvalidFEN)
	}
	return nil
}

// parseSideToMove parses the side to move field; it reports whether Black is to move.
func parseSideToMove(parts []string) (bool, error) {
	if len(parts) < 2 {
		return false, nil
	}
	switch parts[1] {
	case "w":
		return false, nil
	case "b":
		return true, nil
	}
	return false, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
}

// castlingRights is indexed by colour, then kingside (0) and queenside (1).
type castlingRights [2][2]bool

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(parts []string) (castlingRights, error) {
	var rights castlingRights
	if len(parts) < 3 || parts[2] == "-" {
		return rights, nil
	}
	for _, c := range parts[2] {
		switch c {
		case 'K':
			rights[chess.White][0] = true
		case 'Q':
			rights[chess.White][1] = true
		case 'k':
			rights[chess.Black][0] = true
		case 'q':
			rights[chess.Black][1] = true
		default:
			return rights, fmt.Errorf("invalid castling character: %c: %w", c, errors.ErrInvalidFEN)
		}
	}
	return rights, nil
}

// markMoved sets the moved flag on pawns off their start rank and on kings
// and rooks whose castling right is gone.
func markMoved(board *chess.Board, rights castlingRights) {
	for l := range chess.AllLocations() {
		p, ok := board.PieceAt(l)
		if !ok {
			continue
		}
		home := p.Colour.HomeRank()
		switch p.Kind {
		case chess.Pawn:
			p.Moved = l.Rank != home+p.Colour.Forward()
		case chess.King:
			r := rights[p.Colour]
			p.Moved = l != chess.Loc(4, home) || (!r[0] && !r[1])
		case chess.Rook:
			switch {
			case l == chess.Loc(7, home):
				p.Moved = !rights[p.Colour][0]
			case l == chess.Loc(0, home):
				p.Moved = !rights[p.Colour][1]
			default:
				p.Moved = true
			}
		case chess.Knight, chess.Bishop, chess.Queen, chess.NoKind, chess.NumKinds:
		}
		_ = board.PlaceAt(l, p)
	}
}

// parseFullmove parses the fullmove number; the halfmove clock is not kept.
func parseFullmove(parts []string) (int, error) {
	if len(parts) < 6 {
		return 1, nil
	}
	n, err := strconv.Atoi(parts[5])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid fullmove number: %s: %w", parts[5], errors.ErrInvalidFEN)
	}
	return n, nil
}

// BoardToFEN converts a board to a FEN string. The en passant field is
// always "-" and the halfmove clock always 0.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteString(" - ")
	fmt.Fprintf(&sb, "0 %d", board.MoveCount()/2+1)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece, ok := board.PieceAt(chess.Loc(file, rank))
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Char())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove() == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		for _, side := range []chess.CastleSide{chess.Kingside, chess.Queenside} {
			if checkCastleRights(&board.Position, c, side) {
				letter := byte('K')
				if side == chess.Queenside {
					letter = 'Q'
				}
				if c == chess.Black {
					letter += 'a' - 'A'
				}
				sb.WriteByte(letter)
				hasCastling = true
			}
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// checkCastleRights reports whether king and rook for the side are unmoved
// on their origin squares, regardless of what stands between them.
func checkCastleRights(p *chess.Position, colour chess.Colour, side chess.CastleSide) bool {
	g := castleGeometry(colour, side)
	king, rook := p.At(g.king), p.At(g.rook)
	return king == chess.NewPiece(colour, chess.King) && rook == chess.NewPiece(colour, chess.Rook)
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.Setup()
	return board
}
