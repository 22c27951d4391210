package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommandKinds(t *testing.T) {
	cases := []struct {
		line string
		kind Kind
	}{
		{"uci", KindUCI},
		{"isready", KindIsReady},
		{"ucinewgame", KindNewGame},
		{"stop", KindStop},
		{"quit", KindQuit},
		{"setoption name max_depth value 8", KindSetOption},
		{"position startpos", KindPosition},
		{"position startpos moves e2e4 e7e5", KindPosition},
		{"position fen rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", KindPosition},
		{"go depth 4", KindGo},
		{"go", KindGo},
		{"", KindUnknown},
		{"bananas", KindUnknown},
	}
	for _, c := range cases {
		cmd, err := ParseCommand(c.line)
		if c.kind == KindUnknown && c.line == "bananas" {
			require.Error(t, err)
		}
		require.Equal(t, c.kind, cmd.Kind, "line %q", c.line)
	}
}

func TestParsePositionMoves(t *testing.T) {
	cmd, err := ParseCommand("position startpos moves e2e4 e7e5 g1f3")
	require.NoError(t, err)
	require.Equal(t, "", cmd.FEN)
	require.Equal(t, []string{"e2e4", "e7e5", "g1f3"}, cmd.Moves)
}

func TestParseSetOption(t *testing.T) {
	cmd, err := ParseCommand("setoption name is_evaluation_mode value true")
	require.NoError(t, err)
	require.Equal(t, "is_evaluation_mode", cmd.OptionName)
	require.Equal(t, "true", cmd.OptionValue)
}

func TestParseGoDepth(t *testing.T) {
	cmd, err := ParseCommand("go depth 12")
	require.NoError(t, err)
	require.True(t, cmd.HasDepth)
	require.Equal(t, 12, cmd.Depth)
}
