package chess

// Result strings used in the Result tag.
const (
	ResultWhiteWins  = "1-0"
	ResultBlackWins  = "0-1"
	ResultInProgress = "*"
)

// SevenTagRoster contains the seven standard tags in order.
var SevenTagRoster = []string{
	"Event",
	"Site",
	"Date",
	"Round",
	"White",
	"Black",
	"Result",
}

// Game is the record of a played game: its tags and the moves applied so far.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// The moves in the order they were played.
	Moves []Move
}

// NewGame creates a new empty game with its result still open.
func NewGame() *Game {
	return &Game{
		Tags: map[string]string{"Result": ResultInProgress},
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value.
func (g *Game) SetTag(name, value string) {
	g.ensureTags()
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

func (g *Game) ensureTags() {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag("White")
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag("Black")
}

// Result returns the game result.
func (g *Game) Result() string {
	return g.GetTag("Result")
}

// RecordWinner sets the Result tag for a decided game.
func (g *Game) RecordWinner(c Colour) {
	if c == White {
		g.SetTag("Result", ResultWhiteWins)
	} else {
		g.SetTag("Result", ResultBlackWins)
	}
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}

// LastMove returns the last move in the game, or false if there are none.
func (g *Game) LastMove() (Move, bool) {
	if len(g.Moves) == 0 {
		return Move{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}

// AppendMove adds a move to the end of the game.
func (g *Game) AppendMove(m Move) {
	g.Moves = append(g.Moves, m)
}
