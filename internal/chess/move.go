package chess

// CheckStatus is the check annotation of a move.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)

// Suffix returns the SAN suffix for the status.
func (c CheckStatus) Suffix() string {
	switch c {
	case Check:
		return "+"
	case Checkmate:
		return "#"
	}
	return ""
}

// CastleSide identifies a castling move.
type CastleSide int

const (
	NoCastle CastleSide = iota
	Kingside
	Queenside
)

// String returns the castle token for the side.
func (s CastleSide) String() string {
	switch s {
	case Kingside:
		return "O-O"
	case Queenside:
		return "O-O-O"
	}
	return ""
}

// MoveIntent is a parsed notation record. It says what the text asked for,
// not what the board allows.
type MoveIntent struct {
	// The original move text.
	Text string

	// Kind of the piece moved; Pawn when no letter was given.
	Kind Kind

	// Disambiguating source file and rank, -1 when absent.
	FromFile int
	FromRank int

	Capture bool
	To      Location

	// Requested promotion, NoKind if none.
	Promotion Kind

	// Check annotation. Informational only.
	Check CheckStatus

	// Set for castle tokens; the other fields are then unused.
	Castle CastleSide

	// Trailing ?/! glyphs.
	Glyphs string
}

// IsCastle returns true if the intent is a castle token.
func (m MoveIntent) IsCastle() bool {
	return m.Castle != NoCastle
}

// HasFromFile returns true if a source file was given.
func (m MoveIntent) HasFromFile() bool {
	return m.FromFile >= 0
}

// HasFromRank returns true if a source rank was given.
func (m MoveIntent) HasFromRank() bool {
	return m.FromRank >= 0
}

// Move is a move that has been applied to a board.
type Move struct {
	// The text that produced the move, if it came from notation.
	Text string

	// The piece that moved, as it stood before moving.
	Piece Piece

	From Location
	To   Location

	// The piece captured (empty if no capture).
	Captured Piece

	// The piece promoted to (NoKind if not a promotion).
	Promotion Kind

	Castle CastleSide

	// Whether the move gives check or checkmate.
	Check CheckStatus
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	return m.Castle != NoCastle
}

// UCI returns the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Letter() + ('a' - 'A'))
	}
	return s
}
