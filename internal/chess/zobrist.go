package chess

import "math/rand"

// Zobrist tables: fixed, deterministic 64-bit random words indexed by
// (piece type, color, square), side-to-move, castling-rights value
// (0..15) and en-passant square. Seeded from a fixed constant so
// hashes reproduce across runs, as required for TT and repetition use.
var (
	zobristPiece     [PieceTypeCount][ColorCount][64]uint64
	zobristEnPassant [64]uint64
	zobristCastling  [16]uint64
	zobristTurn      [ColorCount]uint64
)

const zobristSeed = 0x5A5A5A5A5A5A5A5A

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	rand64 := func() uint64 { return uint64(r.Int63())<<32 ^ uint64(r.Int63()) }

	for pt := Pawn; pt <= King; pt++ {
		for c := Color(0); c < ColorCount; c++ {
			for sq := Square(0); sq < 64; sq++ {
				zobristPiece[pt][c][sq] = rand64()
			}
		}
	}
	for sq := Square(0); sq < 64; sq++ {
		zobristEnPassant[sq] = rand64()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rand64()
	}
	for c := Color(0); c < ColorCount; c++ {
		zobristTurn[c] = rand64()
	}
}

// Hash returns the 64-bit Zobrist fingerprint of the position.
func (p *Position) Hash() uint64 {
	var h uint64
	for pt := Pawn; pt <= King; pt++ {
		for c := Color(0); c < ColorCount; c++ {
			for bb := p.PieceBB[pt] & p.ColorBB[c]; bb != 0; {
				var sq Square
				sq, bb = bb.PopLSB()
				h ^= zobristPiece[pt][c][sq]
			}
		}
	}
	h ^= zobristTurn[p.Turn]
	h ^= zobristCastling[p.Castling&0xF]
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant]
	}
	return h
}
