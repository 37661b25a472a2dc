package chess

// Board represents a chess board with all state needed for the game.
// Board values are comparable; two boards are equal when placement, move
// count and winner all match.
type Board struct {
	Position

	// Number of half-moves played. Even means White to move.
	moves int

	// Set once a side has been checkmated.
	winner    Colour
	hasWinner bool
}

// backRank is the standard piece order from the a-file to the h-file.
var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	b := &Board{}
	b.Clear()
	return b
}

// Setup clears the board and places the standard starting position.
func (b *Board) Setup() {
	b.Clear()
	for file := 0; file < BoardSize; file++ {
		b.squares[file][0] = W(backRank[file])
		b.squares[file][1] = W(Pawn)
		b.squares[file][6] = B(Pawn)
		b.squares[file][7] = B(backRank[file])
	}

	b.kings[White] = Location{File: 4, Rank: 0}
	b.kings[Black] = Location{File: 4, Rank: 7}

	b.moves = 0
	b.winner = Black
	b.hasWinner = false
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// MoveCount returns the number of half-moves played.
func (b *Board) MoveCount() int {
	return b.moves
}

// SetMoveCount sets the half-move counter, e.g. when loading a position.
func (b *Board) SetMoveCount(n int) {
	b.moves = n
}

// AdvanceTurn records that a half-move has been made.
func (b *Board) AdvanceTurn() {
	b.moves++
}

// ToMove returns the side whose turn it is.
func (b *Board) ToMove() Colour {
	if b.moves%2 == 0 {
		return White
	}
	return Black
}

// Winner returns the declared winner, if any.
func (b *Board) Winner() (Colour, bool) {
	return b.winner, b.hasWinner
}

// DeclareWinner records c as the winner of the game.
func (b *Board) DeclareWinner(c Colour) {
	b.winner = c
	b.hasWinner = true
}
