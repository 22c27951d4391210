package search

import (
	"sort"

	"github.com/dpojoga/chessflow/internal/chess"
)

const (
	scoreTTMove     int32 = 2_000_000
	scoreCaptureBase int32 = 1_000_000
	scorePromotion  int32 = 1_000_000
	scoreKiller1    int32 = 900_000
	scoreKiller2    int32 = 800_000
)

// mvvLVA weights victim an order of magnitude over attacker so that,
// e.g., PxQ always outranks QxP.
func mvvLVA(victim, attacker chess.PieceType) int32 {
	return pieceValue[victim]*10 - pieceValue[attacker]
}

// orderingState holds the per-search-state killer and history tables
// used by scoreMove at every alpha-beta node (spec.md §4.9).
type orderingState struct {
	killers [MaxPly][2]chess.Move
	history [64][64]int32
}

func newOrderingState() *orderingState {
	os := &orderingState{}
	for i := range os.killers {
		os.killers[i] = [2]chess.Move{chess.NoMove, chess.NoMove}
	}
	return os
}

// recordKiller pushes m onto ply's killer slots iff it is a quiet move
// (non-capture, non-promotion) that caused a beta cutoff.
func (os *orderingState) recordKiller(ply int, m chess.Move) {
	if ply >= MaxPly {
		return
	}
	if os.killers[ply][0] == m {
		return
	}
	os.killers[ply][1] = os.killers[ply][0]
	os.killers[ply][0] = m
}

func (os *orderingState) recordHistory(m chess.Move, depth int) {
	os.history[m.From()][m.To()] += int32(depth)
}

// scoreMove implements spec.md §4.9's single ordering function, used
// at the search root and at every alpha-beta node. Quiescence nodes
// order their moves with orderTacticalMoves instead.
func (os *orderingState) scoreMove(pos *chess.Position, m, ttMove chess.Move, ply int) int32 {
	if ttMove != chess.NoMove && m == ttMove {
		return scoreTTMove
	}
	if m.IsCapture() {
		victimPT, _, ok := pos.PieceOn(m.To())
		if !ok {
			// En passant: the captured pawn is not on the destination square.
			victimPT = chess.Pawn
		}
		attackerPT, _, _ := pos.PieceOn(m.From())
		return scoreCaptureBase + mvvLVA(victimPT, attackerPT)
	}
	if m.Promotion() != chess.NoPieceType {
		return scorePromotion
	}
	var s int32
	if ply < MaxPly {
		if os.killers[ply][0] == m {
			s += scoreKiller1
		} else if os.killers[ply][1] == m {
			s += scoreKiller2
		}
	}
	s += os.history[m.From()][m.To()]
	return s
}

// orderMoves sorts moves in place, descending by scoreMove.
func (os *orderingState) orderMoves(pos *chess.Position, moves []chess.Move, ttMove chess.Move, ply int) {
	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = os.scoreMove(pos, m, ttMove, ply)
	}
	pairSort(moves, scores)
}

// pairSort sorts moves descending by their parallel scores slice.
func pairSort(moves []chess.Move, scores []int32) {
	idx := make([]int, len(moves))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return scores[idx[i]] > scores[idx[j]] })
	ordered := make([]chess.Move, len(moves))
	for i, j := range idx {
		ordered[i] = moves[j]
	}
	copy(moves, ordered)
}

// orderTacticalMoves sorts quiescence-phase moves: promotions first (by
// promoted-piece value), then captures by MVV-LVA.
func orderTacticalMoves(pos *chess.Position, moves []chess.Move) {
	score := func(m chess.Move) int32 {
		if promo := m.Promotion(); promo != chess.NoPieceType {
			return scorePromotion + pieceValue[promo]
		}
		victimPT, _, ok := pos.PieceOn(m.To())
		if !ok {
			victimPT = chess.Pawn
		}
		attackerPT, _, _ := pos.PieceOn(m.From())
		return scoreCaptureBase + mvvLVA(victimPT, attackerPT)
	}
	scores := make([]int32, len(moves))
	for i, m := range moves {
		scores[i] = score(m)
	}
	pairSort(moves, scores)
}
