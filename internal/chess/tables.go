package chess

// Precomputed attack tables. Built once at package init and never
// mutated afterward; every lookup is a plain array index.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [ColorCount][64]Bitboard
)

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1}, {0, -1},
	{0, 1}, {1, -1}, {1, 0}, {1, 1},
}

var pawnCaptureOffsets = [ColorCount][2][2]int{
	White: {{-1, 1}, {1, 1}},
	Black: {{-1, -1}, {1, -1}},
}

func init() {
	for sq := Square(0); sq < 64; sq++ {
		knightAttacks[sq] = jumpAttacks(sq, knightOffsets[:])
		kingAttacks[sq] = jumpAttacks(sq, kingOffsets[:])
		pawnAttacks[White][sq] = jumpAttacks(sq, pawnCaptureOffsets[White][:])
		pawnAttacks[Black][sq] = jumpAttacks(sq, pawnCaptureOffsets[Black][:])
	}
}

func jumpAttacks(sq Square, offsets [][2]int) Bitboard {
	var bb Bitboard
	for _, d := range offsets {
		if to, ok := sq.TryOffset(d[0], d[1]); ok {
			bb = bb.Set(to)
		}
	}
	return bb
}

// sliding deltas, one set per ray direction.
var rookDeltas = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// rayAttacks traces from sq along each delta, stopping at and
// including the first occupied square. occupied is the combined
// occupancy of both colors. Sliders are computed on demand rather
// than via magic bitboards; the spec only requires correctness, and
// ray-tracing keeps the table-building deterministic.
func rayAttacks(sq Square, deltas [4][2]int, occupied Bitboard) Bitboard {
	var bb Bitboard
	for _, d := range deltas {
		cur := sq
		for {
			to, ok := cur.TryOffset(d[0], d[1])
			if !ok {
				break
			}
			bb = bb.Set(to)
			cur = to
			if occupied.Test(to) {
				break
			}
		}
	}
	return bb
}

func rookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, rookDeltas, occupied)
}

func bishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, bishopDeltas, occupied)
}

func queenAttacks(sq Square, occupied Bitboard) Bitboard {
	return rookAttacks(sq, occupied) | bishopAttacks(sq, occupied)
}
