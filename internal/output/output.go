// Package output writes game records as PGN text or JSON.
package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// DefaultLineLength is the movetext width used when none is given.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control. The first
// write error is kept and later writes become no-ops.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a token, separated from the previous one by a space or a
// line break when the line would overflow.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.emit("\n")
			o.lineLength = 0
		} else {
			o.emit(" ")
			o.lineLength++
		}
	}
	o.emit(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.emit("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

func (o *OutputWriter) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// WriteGame writes game as PGN: the seven tag roster, any other tags in
// name order, a blank line, then the numbered movetext ending in the result.
func WriteGame(w io.Writer, game *chess.Game, maxLineLength int) error {
	ow := NewOutputWriter(w, maxLineLength)
	writeTags(ow, game)
	ow.NewLine()
	writeMoves(ow, game)
	ow.NewLine()
	ow.NewLine()
	return ow.Err()
}

func writeTags(ow *OutputWriter, game *chess.Game) {
	for _, tag := range chess.SevenTagRoster {
		value := game.GetTag(tag)
		if value == "" {
			value = "?"
		}
		ow.emit(fmt.Sprintf("[%s \"%s\"]\n", tag, escapeTagValue(value)))
	}
	for _, tag := range slices.Sorted(maps.Keys(game.Tags)) {
		if slices.Contains(chess.SevenTagRoster, tag) {
			continue
		}
		ow.emit(fmt.Sprintf("[%s \"%s\"]\n", tag, escapeTagValue(game.Tags[tag])))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

func writeMoves(ow *OutputWriter, game *chess.Game) {
	board, _ := initialBoard(game)
	r := newReplay(board)

	for i, m := range game.Moves {
		mover := r.board.ToMove()
		num := r.moveNumber()
		if mover == chess.White {
			ow.Write(fmt.Sprintf("%d.", num))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", num))
		}
		ow.Write(r.next(m))
	}
	ow.Write(gameResult(game))
}

func gameResult(game *chess.Game) string {
	if r := game.Result(); r != "" {
		return r
	}
	return chess.ResultInProgress
}

// initialBoard returns the position the game started from and its FEN, which
// is empty for the standard setup.
func initialBoard(game *chess.Game) (*chess.Board, string) {
	if fen := game.GetTag("FEN"); fen != "" {
		if b, err := engine.NewBoardFromFEN(fen); err == nil {
			return b, fen
		}
	}
	return engine.NewInitialBoard(), ""
}

// replay steps a board through recorded moves to name each one. Once a move
// cannot be replayed the remaining moves fall back to their recorded text.
type replay struct {
	board  *chess.Board
	broken bool
}

func newReplay(b *chess.Board) *replay {
	return &replay{board: b}
}

// moveNumber is the full-move number of the side to move.
func (r *replay) moveNumber() int {
	return r.board.MoveCount()/2 + 1
}

// next applies m and returns its SAN.
func (r *replay) next(m chess.Move) string {
	if r.broken {
		r.board.AdvanceTurn()
		return recordedText(m)
	}
	before := *r.board
	if _, err := engine.MakeMove(r.board, m.From, m.To, m.Promotion, false); err != nil {
		r.broken = true
		r.board.AdvanceTurn()
		return recordedText(m)
	}
	return engine.SAN(&before, m)
}

func recordedText(m chess.Move) string {
	if m.Text != "" {
		return m.Text
	}
	return m.UCI()
}
