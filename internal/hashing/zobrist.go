package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

const numSquares = chess.BoardSize * chess.BoardSize

// Random keys, fixed by seed so hashes are stable across runs.
var (
	pieceKeys   [2][chess.NumKinds][numSquares]uint64
	unmovedKeys [2][numSquares]uint64
	blackToMove uint64
)

func init() {
	rng := rand.New(rand.NewPCG(0x9e3779b97f4a7c15, 0xbf58476d1ce4e5b9))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
		for sq := range unmovedKeys[c] {
			unmovedKeys[c][sq] = rng.Uint64()
		}
	}
	blackToMove = rng.Uint64()
}

func squareIndex(l chess.Location) int {
	return l.Rank*chess.BoardSize + l.File
}

// GenerateZobristHash hashes the placement and side to move of b. Unmoved
// kings and rooks hash differently from moved ones, so positions that differ
// only in castling rights get different hashes.
func GenerateZobristHash(b *chess.Board) uint64 {
	var h uint64
	for l := range chess.AllLocations() {
		p, ok := b.PieceAt(l)
		if !ok {
			continue
		}
		sq := squareIndex(l)
		h ^= pieceKeys[p.Colour][p.Kind][sq]
		if !p.Moved && (p.Kind == chess.King || p.Kind == chess.Rook) {
			h ^= unmovedKeys[p.Colour][sq]
		}
	}
	if b.ToMove() == chess.Black {
		h ^= blackToMove
	}
	return h
}

// HashCode is a cheap additive position hash used to confirm Zobrist matches.
type HashCode uint32

// WeakHash sums a per-piece, per-square value over the board.
func WeakHash(b *chess.Board) HashCode {
	var h HashCode
	for l := range chess.AllLocations() {
		p, ok := b.PieceAt(l)
		if !ok {
			continue
		}
		v := HashCode(int(p.Colour)*int(chess.NumKinds) + int(p.Kind))
		h += v * HashCode(squareIndex(l)+1) * 2654435761
	}
	return h
}
