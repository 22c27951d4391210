package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpojoga/chessflow/internal/chess"
)

func newTestSearcher() *Searcher {
	return NewSearcher(NewState(NewMapTranspositionTable()), 4)
}

func TestFindBestMoveFoolsMate(t *testing.T) {
	pos := chess.StartPosition()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4"} {
		pos = applyUCI(t, pos, uci)
	}
	// Black to move and mate in one with d8h4.
	s := newTestSearcher()
	move, score, ok := s.FindBestMove(pos, 2)
	require.True(t, ok)
	require.Equal(t, "d8h4", move.UCI())
	require.True(t, IsMateScore(score))
	require.Positive(t, score) // good for the side to move (Black)
}

func TestMatePreferenceNearerMateScoresHigher(t *testing.T) {
	nearer := MateIn(1)
	farther := MateIn(3)
	require.Greater(t, nearer, farther)
}

func TestNoLegalMovesReportsFalse(t *testing.T) {
	// Fool's-mated position: White, to move, has no legal replies.
	pos := chess.StartPosition()
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		pos = applyUCI(t, pos, uci)
	}
	s := newTestSearcher()
	_, _, ok := s.FindBestMove(pos, 2)
	require.False(t, ok)
}

func TestQuiescenceBoundedByStandPat(t *testing.T) {
	pos, err := chess.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	s := newTestSearcher()
	standPat := evalRelative(pos)
	const inf = MateScore + 1
	got := s.quiescence(pos, int32(-inf), int32(inf), 4)
	require.GreaterOrEqual(t, got, standPat)
}

func TestTranspositionTableExactHit(t *testing.T) {
	tt := NewMapTranspositionTable()
	tt.Store(42, Entry{Score: 17, Depth: 3, Type: Exact, BestMove: chess.NewMove(chess.Square(12), chess.Square(28), chess.NoPieceType, false)})
	e, ok := tt.Probe(42)
	require.True(t, ok)
	require.Equal(t, int32(17), e.Score)
	require.Equal(t, Exact, e.Type)
}

func applyUCI(t *testing.T, pos *chess.Position, uci string) *chess.Position {
	t.Helper()
	for _, m := range chess.GenerateLegalMoves(pos) {
		if m.UCI() == uci {
			return pos.Apply(m)
		}
	}
	t.Fatalf("no legal move %s from %s", uci, pos.FEN())
	return nil
}
