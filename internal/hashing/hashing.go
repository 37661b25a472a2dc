// Package hashing provides duplicate detection for chess games.
package hashing

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// DuplicateDetector tracks the final positions of games seen so far.
type DuplicateDetector struct {
	// hashTable maps a Zobrist hash to the games that ended there.
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the ply counts to agree
	useExactMatch bool
	// maxCapacity bounds the stored signatures; 0 is unlimited.
	maxCapacity int
	stored      int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
	// WeakHash is a fast hash for quick comparison
	WeakHash HashCode
}

// NewDuplicateDetector creates a new duplicate detector. Once maxCapacity
// signatures are stored, later games are still checked but not remembered.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// Signature builds the signature of game ending on board.
func Signature(game *chess.Game, board *chess.Board) GameSignature {
	return GameSignature{
		Hash:      GenerateZobristHash(board),
		MoveCount: game.PlyCount(),
		WeakHash:  WeakHash(board),
	}
}

// CheckAndAdd reports whether game, ending on board, duplicates one seen
// before, and remembers it if not.
func (d *DuplicateDetector) CheckAndAdd(game *chess.Game, board *chess.Board) bool {
	if board == nil {
		return false
	}

	sig := Signature(game, board)
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if !d.IsFull() {
		d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
		d.stored++
	}
	return false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash {
		return false
	}
	if d.useExactMatch && a.MoveCount != b.MoveCount {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.stored
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.stored >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.stored = 0
	d.duplicateCount = 0
}
