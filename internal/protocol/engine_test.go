package protocol

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dpojoga/chessflow/internal/chess"
	"github.com/dpojoga/chessflow/internal/search"
)

func TestEngineUCIHandshake(t *testing.T) {
	var out bytes.Buffer
	e := NewEngine(&out, search.NewMapTranspositionTable())
	require.NoError(t, e.Execute("uci"))
	require.Contains(t, out.String(), "id name ChessFlow")
	require.Contains(t, out.String(), "uciok")
}

func TestEngineIsReady(t *testing.T) {
	var out bytes.Buffer
	e := NewEngine(&out, search.NewMapTranspositionTable())
	require.NoError(t, e.Execute("isready"))
	require.Equal(t, "readyok\n", out.String())
}

func TestEngineSetOptionValidatesRange(t *testing.T) {
	var out bytes.Buffer
	e := NewEngine(&out, search.NewMapTranspositionTable())
	require.NoError(t, e.Execute("setoption name max_depth value 99"))
	require.Equal(t, 6, e.Options.MaxDepth) // rejected, default retained
	require.Contains(t, out.String(), "error")
}

func TestEngineGoProducesBestMove(t *testing.T) {
	var out bytes.Buffer
	e := NewEngine(&out, search.NewMapTranspositionTable())
	require.NoError(t, e.Execute("position startpos"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	in := strings.NewReader("go depth 2\nquit\n")
	err := e.Run(ctx, in)
	require.NoError(t, err)
	require.Contains(t, out.String(), "bestmove ")
}

func TestEngineIllegalMoveInListIsIgnoredNotFatal(t *testing.T) {
	var out bytes.Buffer
	e := NewEngine(&out, search.NewMapTranspositionTable())
	require.NoError(t, e.Execute("position startpos moves e2e4 e2e4 e7e5"))
	require.Equal(t, chess.White, e.position.Turn)
}
