package server

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
)

// figurines is indexed by colour, then kind.
var figurines = [2][chess.NumKinds]string{
	chess.Black: {" ", "♟", "♞", "♝", "♜", "♛", "♚"},
	chess.White: {" ", "♙", "♘", "♗", "♖", "♕", "♔"},
}

// layout describes one display size.
type layout struct {
	pad   string // either side of the piece inside a cell
	boxed bool
	blank string
}

var layouts = map[string]layout{
	config.SizeBig:    {pad: " ", boxed: true, blank: " "},
	config.SizeMedium: {boxed: true, blank: " "},
	config.SizeSmall:  {blank: "·"},
}

// renderRows draws the board as text, rank 8 first. Big and medium boards
// are boxed with cells three and one characters wide; small is a bare grid.
func renderRows(b *chess.Board, d config.DisplayConfig) []string {
	lay, ok := layouts[d.Size]
	if !ok {
		lay = layouts[config.SizeBig]
	}
	label := func(s string) string {
		if !d.AxisLabels {
			return ""
		}
		return s + " "
	}
	seg := strings.Repeat("─", 1+2*len(lay.pad))
	border := func(left, mid, right string) string {
		return label(" ") + left + strings.Repeat(seg+mid, chess.BoardSize-1) + seg + right
	}

	var rows []string
	if lay.boxed {
		rows = append(rows, border("┌", "┬", "┐"))
	}
	for i, row := range b.Oriented() {
		if lay.boxed && i > 0 {
			rows = append(rows, border("├", "┼", "┤"))
		}
		cells := make([]string, 0, chess.BoardSize)
		for _, p := range row {
			cells = append(cells, lay.pad+glyph(p, d.Figurine, lay.blank)+lay.pad)
		}
		line := strings.Join(cells, "")
		if lay.boxed {
			line = "│" + strings.Join(cells, "│") + "│"
		}
		rows = append(rows, label(strconv.Itoa(chess.BoardSize-i))+line)
	}
	if lay.boxed {
		rows = append(rows, border("└", "┴", "┘"))
	}

	if d.AxisLabels {
		var sb strings.Builder
		sb.WriteString(label(" "))
		for f := 0; f < chess.BoardSize; f++ {
			if lay.boxed {
				sb.WriteString(" ")
			}
			sb.WriteString(lay.pad)
			sb.WriteByte(byte('a' + f))
			sb.WriteString(lay.pad)
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return rows
}

func glyph(p chess.Piece, figurine bool, blank string) string {
	switch {
	case p.IsEmpty():
		return blank
	case figurine:
		return figurines[p.Colour][p.Kind]
	}
	return string(p.Char())
}
