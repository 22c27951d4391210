package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpojoga/chessflow/internal/chess"
)

// matePuzzle is a forced-mate regression case: fen is the position to
// move from, depth is how deep FindBestMove must look to see the mate,
// and want is any of the UCI moves that deliver it (some puzzles have
// more than one mating first move).
type matePuzzle struct {
	name  string
	fen   string
	depth int
	want  []string
}

var matePuzzles = []matePuzzle{
	{
		name:  "back rank mate in 1",
		fen:   "7k/5ppp/8/8/8/8/8/R6K w - - 0 1",
		depth: 3,
		want:  []string{"a1a8"},
	},
	{
		name:  "smothered mate in 1",
		fen:   "6rk/6pp/8/6N1/8/8/8/6K1 w - - 0 1",
		depth: 3,
		want:  []string{"g5f7"},
	},
}

func TestMateSolving(t *testing.T) {
	for _, p := range matePuzzles {
		t.Run(p.name, func(t *testing.T) {
			pos, err := chess.ParseFEN(p.fen)
			require.NoError(t, err)

			tt := NewMapTranspositionTable()
			searcher := NewSearcher(NewState(tt), 4)
			m, score, ok := searcher.FindBestMove(pos, p.depth)
			require.True(t, ok, "expected a move to be found")
			require.True(t, IsMateScore(score), "expected a forced mate score, got %d", score)
			require.Contains(t, p.want, m.UCI())
		})
	}
}
