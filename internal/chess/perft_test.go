package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// perft counts the number of leaf positions reachable in `depth` plies,
// the canonical move-generator integration test (spec.md §8 scenario 1).
func perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range GenerateLegalMoves(p) {
		nodes += perft(p.Apply(m), depth-1)
	}
	return nodes
}

func TestPerftStartPos(t *testing.T) {
	want := map[int]uint64{1: 20, 2: 400, 3: 8902, 4: 197281}
	pos := StartPosition()
	for depth := 1; depth <= 4; depth++ {
		require.Equal(t, want[depth], perft(pos, depth), "perft depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	want := map[int]uint64{1: 48, 2: 2039, 3: 97862}
	for depth := 1; depth <= 3; depth++ {
		require.Equal(t, want[depth], perft(pos, depth), "perft depth %d", depth)
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	require.NoError(t, err)

	found := NoMove
	for _, m := range GenerateLegalMoves(pos) {
		if m.From().String() == "e5" && m.To().String() == "d6" {
			found = m
		}
	}
	require.NotEqual(t, NoMove, found, "expected e5d6 en passant among legal moves")
	require.True(t, found.IsCapture())

	next := pos.Apply(found)
	sq, _ := ParseSquare("d5")
	_, _, occupied := next.PieceOn(sq)
	require.False(t, occupied, "captured pawn on d5 must be gone after en passant")
}

func TestCastlingDeniedThroughCheck(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	for _, m := range GenerateLegalMoves(pos) {
		if m.From().String() == "e1" && m.To().String() == "g1" {
			t.Fatalf("kingside castle should be illegal: the king on e1 is in check from the rook on e2")
		}
	}
}

func TestThreefoldRepetitionSequence(t *testing.T) {
	pos := StartPosition()
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	counts := map[uint64]int{pos.Hash(): 1}
	for _, uci := range moves {
		m := findLegalByUCI(t, pos, uci)
		pos = pos.Apply(m)
		counts[pos.Hash()]++
	}
	require.Equal(t, ThreefoldRepetition, Classify(pos, counts[pos.Hash()], nil))
}

func TestFiftyMoveDraw(t *testing.T) {
	pos, err := ParseFEN("8/8/8/4k3/8/8/8/4K2R w K - 99 50")
	require.NoError(t, err)
	m := findLegalByUCI(t, pos, "h1h2")
	next := pos.Apply(m)
	require.Equal(t, FiftyMoveDraw, Classify(next, 1, nil))
}

func findLegalByUCI(t *testing.T, pos *Position, uci string) Move {
	t.Helper()
	for _, m := range GenerateLegalMoves(pos) {
		if m.UCI() == uci {
			return m
		}
	}
	t.Fatalf("no legal move %s from %s", uci, pos.FEN())
	return NoMove
}

func TestFoolsMateCheckmate(t *testing.T) {
	pos := StartPosition()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		pos = pos.Apply(findLegalByUCI(t, pos, uci))
	}
	require.Equal(t, Checkmate, Classify(pos, 1, nil))
	require.Equal(t, White, pos.Winner())
}
