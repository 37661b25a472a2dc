package output

import (
	"maps"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	PlyCount   int               `json:"plyCount"`
	InitialFEN string            `json:"initialFEN,omitempty"`
	FinalFEN   string            `json:"finalFEN"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Colour     string `json:"colour"`
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	Castle     string `json:"castle,omitempty"`
	Check      bool   `json:"check,omitempty"`
	Checkmate  bool   `json:"checkmate,omitempty"`
	FEN        string `json:"fen"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game record, replaying it to name each move and to
// record the position after it.
func GameToJSON(game *chess.Game) *JSONGame {
	board, initialFEN := initialBoard(game)
	jg := &JSONGame{
		Tags:       copyTags(game.Tags),
		Moves:      make([]JSONMove, 0, len(game.Moves)),
		Result:     gameResult(game),
		PlyCount:   game.PlyCount(),
		InitialFEN: initialFEN,
	}

	r := newReplay(board)
	for _, m := range game.Moves {
		jm := JSONMove{
			MoveNumber: r.moveNumber(),
			Colour:     strings.ToLower(m.Piece.Colour.String()),
			UCI:        m.UCI(),
			From:       m.From.String(),
			To:         m.To.String(),
			Piece:      strings.ToLower(m.Piece.Kind.String()),
			Castle:     m.Castle.String(),
			Check:      m.Check == chess.Check,
			Checkmate:  m.Check == chess.Checkmate,
		}
		if m.IsCapture() {
			jm.Captured = strings.ToLower(m.Captured.Kind.String())
		}
		if m.IsPromotion() {
			jm.Promotion = strings.ToLower(m.Promotion.String())
		}
		jm.SAN = r.next(m)
		jm.FEN = engine.BoardToFEN(r.board)
		jg.Moves = append(jg.Moves, jm)
	}
	jg.FinalFEN = engine.BoardToFEN(r.board)
	return jg
}

// copyTags copies game tags and ensures the seven tag roster has values.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags)+len(chess.SevenTagRoster))
	maps.Copy(result, tags)
	for _, tag := range chess.SevenTagRoster {
		if result[tag] == "" {
			result[tag] = "?"
		}
	}
	return result
}
