package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpojoga/chessflow/internal/chess"
)

func TestEvaluateStartPositionIsSymmetric(t *testing.T) {
	pos := chess.StartPosition()
	require.Zero(t, Evaluate(pos))
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a queen.
	pos, err := chess.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)
	require.Positive(t, Evaluate(pos))
}

func TestPassedPawnBonusIncreasesWithAdvance(t *testing.T) {
	early, err := chess.ParseFEN("4k3/8/8/8/8/4P3/8/4K3 w - - 0 1")
	require.NoError(t, err)
	late, err := chess.ParseFEN("4k3/4P3/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Greater(t, Evaluate(late), Evaluate(early))
}
