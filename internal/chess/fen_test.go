package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
		"r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range cases {
		pos, err := ParseFEN(fen)
		require.NoError(t, err)
		require.Equal(t, fen, pos.FEN())
	}
}

func TestStartPositionInvariants(t *testing.T) {
	pos := StartPosition()
	require.Equal(t, pos.ColorBB[White]|pos.ColorBB[Black], pos.Occupied) // I1
	require.Zero(t, pos.ColorBB[White]&pos.ColorBB[Black])                // I2
	require.Equal(t, 1, (pos.PieceBB[King] & pos.ColorBB[White]).Count()) // I4
	require.Equal(t, 1, (pos.PieceBB[King] & pos.ColorBB[Black]).Count())
	require.Equal(t, White, pos.Turn)
	require.Equal(t, AllCastlingRights, pos.Castling)
	require.Equal(t, NoSquare, pos.EnPassant)
}
