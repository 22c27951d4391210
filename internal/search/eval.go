// Package search implements static evaluation and alpha-beta search
// (with transposition table, move ordering, and quiescence) over
// positions from internal/chess.
package search

import "github.com/dpojoga/chessflow/internal/chess"

// Mate scores are sentinels clearly outside any normal material-based
// evaluation; MateIn(ply) prefers nearer mates over farther ones.
const (
	MateScore  int32 = 1_000_000
	DrawScore  int32 = 0
	MaxPly           = 128
)

// MateIn returns the score for delivering mate in `pliesRemaining`
// more plies, from the mover's perspective; nearer mates score higher.
func MateIn(pliesRemaining int) int32 {
	return MateScore - int32(pliesRemaining)
}

// IsMateScore reports whether s represents a forced mate, winning or losing.
func IsMateScore(s int32) bool {
	return s > MateScore-MaxPly || s < -MateScore+MaxPly
}

var pieceValue = [chess.PieceTypeCount]int32{
	chess.NoPieceType: 0,
	chess.Pawn:        100,
	chess.Knight:       320,
	chess.Bishop:       330,
	chess.Rook:         500,
	chess.Queen:        900,
	chess.King:         0,
}

// pawnPST etc. are classic piece-square tables (White's perspective,
// a1=index 0). Black's index is mirrored with 63-sq, per spec.md §4.7.
var pawnPST = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int32{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenPST = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidPST = [64]int32{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

var kingEndPST = [64]int32{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50,
}

var pstByPiece = [chess.PieceTypeCount]*[64]int32{
	chess.Pawn:   &pawnPST,
	chess.Knight: &knightPST,
	chess.Bishop: &bishopPST,
	chess.Rook:   &rookPST,
	chess.Queen:  &queenPST,
}

// passedPawnBonus is indexed by rank-from-own-side (0=home .. 7=last);
// ranks 2..6 (0-indexed 2..6, i.e. "3rd..7th" in spec.md's 1-indexed
// language) carry the named bonuses.
var passedPawnBonus = [8]int32{0, 0, 10, 20, 40, 70, 120, 0}

// Evaluate returns a centipawn score from White's perspective: positive
// favors White. Terminal positions should be scored by the caller via
// MateIn/DrawScore before falling back to Evaluate (search.go does this).
func Evaluate(pos *chess.Position) int32 {
	var score int32
	score += materialAndPST(pos)
	score += mobility(pos)
	score += kingSafety(pos, chess.White) - kingSafety(pos, chess.Black)
	score += passedPawns(pos, chess.White) - passedPawns(pos, chess.Black)
	score += endgameKing(pos)
	return score
}

func materialAndPST(pos *chess.Position) int32 {
	var score int32
	for pt := chess.Pawn; pt <= chess.King; pt++ {
		pst := pstByPiece[pt]
		for bb := pos.PieceBB[pt] & pos.ColorBB[chess.White]; bb != 0; {
			var sq chess.Square
			sq, bb = bb.PopLSB()
			score += pieceValue[pt]
			if pst != nil {
				score += pst[sq]
			}
		}
		for bb := pos.PieceBB[pt] & pos.ColorBB[chess.Black]; bb != 0; {
			var sq chess.Square
			sq, bb = bb.PopLSB()
			score -= pieceValue[pt]
			if pst != nil {
				score -= pst[63-sq]
			}
		}
	}
	return score
}

// mobility counts legal moves for each side from their own hypothetical
// turn on the same board, per spec.md's "(legal(stm) - legal(opp)) * 2".
func mobility(pos *chess.Position) int32 {
	stm := len(chess.GenerateLegalMoves(pos))
	opp := pos.Clone()
	opp.Turn = pos.Turn.Opposite()
	oppMoves := len(chess.GenerateLegalMoves(opp))

	diff := int32(stm - oppMoves)
	if pos.Turn == chess.Black {
		diff = -diff
	}
	return diff * 2
}

// kingSafety returns c's king-safety contribution (pawn shield minus
// opponent attacks on the king zone), to be combined white-minus-black.
func kingSafety(pos *chess.Position, c chess.Color) int32 {
	king := pos.PieceBB[chess.King] & pos.ColorBB[c]
	if king == 0 {
		return 0
	}
	ksq := king.LSB()
	forward := 1
	if c == chess.Black {
		forward = -1
	}

	var score int32
	for _, df := range [3]int{-1, 0, 1} {
		for _, dr := range [2]int{forward, 2 * forward} {
			if sq, ok := ksq.TryOffset(df, dr); ok {
				if pos.PieceBB[chess.Pawn].Test(sq) && pos.ColorBB[c].Test(sq) {
					score += 15
				}
			}
		}
	}

	opp := c.Opposite()
	for _, df := range [3]int{-1, 0, 1} {
		for _, dr := range [3]int{-1, 0, 1} {
			if df == 0 && dr == 0 {
				continue
			}
			if sq, ok := ksq.TryOffset(df, dr); ok {
				if pos.IsSquareAttacked(sq, opp) {
					score -= 10
				}
			}
		}
	}
	return score
}

// passedPawns returns c's total passed-pawn bonus.
func passedPawns(pos *chess.Position, c chess.Color) int32 {
	var score int32
	opp := c.Opposite()
	for bb := pos.PieceBB[chess.Pawn] & pos.ColorBB[c]; bb != 0; {
		var sq chess.Square
		sq, bb = bb.PopLSB()
		if isPassed(pos, sq, c, opp) {
			rank := sq.Rank()
			if c == chess.Black {
				rank = 7 - rank
			}
			score += passedPawnBonus[rank]
		}
	}
	return score
}

func isPassed(pos *chess.Position, sq chess.Square, c, opp chess.Color) bool {
	file := sq.File()
	oppPawns := pos.PieceBB[chess.Pawn] & pos.ColorBB[opp]
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		fileBB := chess.FileBitboard(f)
		for bb := oppPawns & fileBB; bb != 0; {
			var osq chess.Square
			osq, bb = bb.PopLSB()
			if isAhead(sq, osq, c) {
				return false
			}
		}
	}
	return true
}

func isAhead(own, other chess.Square, c chess.Color) bool {
	if c == chess.White {
		return other.Rank() > own.Rank()
	}
	return other.Rank() < own.Rank()
}

// endgameKing rewards centralization and penalizes edge placement once
// neither side retains queen+rook-class material.
func endgameKing(pos *chess.Position) int32 {
	if !isEndgame(pos) {
		return 0
	}
	wk := (pos.PieceBB[chess.King] & pos.ColorBB[chess.White]).LSB()
	bk := (pos.PieceBB[chess.King] & pos.ColorBB[chess.Black]).LSB()
	return kingEndPST[wk] - kingEndPST[63-bk]
}

func isEndgame(pos *chess.Position) bool {
	heavy := func(c chess.Color) int32 {
		return pieceValue[chess.Queen]*int32((pos.PieceBB[chess.Queen]&pos.ColorBB[c]).Count()) +
			pieceValue[chess.Rook]*int32((pos.PieceBB[chess.Rook]&pos.ColorBB[c]).Count())
	}
	threshold := pieceValue[chess.Queen] + pieceValue[chess.Rook]
	return heavy(chess.White) < threshold && heavy(chess.Black) < threshold
}
