package search

import (
	"sync/atomic"

	"github.com/dpojoga/chessflow/internal/chess"
)

// State is per-engine, per-game search state: the TT, move-ordering
// tables (killers/history), the repetition counter built from the
// canonical game line, and the cooperative stop flag. It is owned by
// exactly one goroutine — the search worker (spec.md §5) — and is
// never accessed concurrently.
type State struct {
	TT         TranspositionTable
	ordering   *orderingState
	Repetition map[uint64]int
	Stop       atomic.Bool
	Nodes      uint64
}

// NewState builds search state backed by tt. Repetition starts out
// empty; callers should call Touch(hash) for every position reached on
// the canonical game line, including the starting position.
func NewState(tt TranspositionTable) *State {
	return &State{
		TT:         tt,
		ordering:   newOrderingState(),
		Repetition: make(map[uint64]int, 1024),
	}
}

// Touch records that hash occurred once more on the canonical game
// line (spec.md §4.10: "after each move applied via the command
// protocol, the repetition counter ... is incremented").
func (s *State) Touch(hash uint64) {
	s.Repetition[hash]++
}

// Reset clears the TT, ordering tables and repetition counts for a new
// game (spec.md §6.1 `ucinewgame`).
func (s *State) Reset() {
	s.TT.Clear()
	s.ordering = newOrderingState()
	s.Repetition = make(map[uint64]int, 1024)
	s.Nodes = 0
}

// Searcher drives alpha-beta search over a State.
type Searcher struct {
	State   *State
	MaxQPly int // quiescence depth limit, spec.md's max_q_depth
}

func NewSearcher(state *State, maxQPly int) *Searcher {
	return &Searcher{State: state, MaxQPly: maxQPly}
}

// Stats summarizes one completed (or cancelled) search for info lines.
type Stats struct {
	Depth int
	Nodes uint64
}

// evalRelative converts Evaluate's White-perspective score into the
// negamax convention used internally: positive always favors the side
// to move.
func evalRelative(pos *chess.Position) int32 {
	v := Evaluate(pos)
	if pos.Turn == chess.Black {
		return -v
	}
	return v
}

func terminalScore(pos *chess.Position, result chess.Result, ply int) int32 {
	switch result {
	case chess.Checkmate:
		// The side to move has been mated: a large negative score from
		// its own perspective. Scores shrink in magnitude with ply so a
		// shallower (nearer) mate is always preferred by the side
		// delivering it, once the negation propagates back up the tree.
		return -MateIn(ply)
	case chess.Stalemate, chess.FiftyMoveDraw, chess.InsufficientMaterial, chess.ThreefoldRepetition:
		return DrawScore
	default:
		return evalRelative(pos)
	}
}

func classifyBound(score, origAlpha, beta int32) NodeType {
	if score <= origAlpha {
		return UpperBound
	}
	if score >= beta {
		return LowerBound
	}
	return Exact
}

// FindBestMove runs one fixed-depth search and returns the best move,
// its score (from the side-to-move's perspective), and whether any
// legal move existed at all.
func (s *Searcher) FindBestMove(pos *chess.Position, depth int) (chess.Move, int32, bool) {
	legal := chess.GenerateLegalMoves(pos)
	if len(legal) == 0 {
		return chess.NoMove, 0, false
	}

	hash := pos.Hash()
	ttMove := chess.NoMove
	if e, ok := s.State.TT.Probe(hash); ok {
		ttMove = e.BestMove
	}
	s.State.ordering.orderMoves(pos, legal, ttMove, 0)

	const inf = MateScore + 1
	alpha, beta := int32(-inf), int32(inf)
	best := int32(-inf)
	bestMove := legal[0]

	for _, m := range legal {
		if s.State.Stop.Load() {
			break
		}
		s.State.Nodes++
		child := pos.Apply(m)
		score := -s.alphabeta(child, depth-1, -beta, -alpha, 1)
		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	s.State.TT.Store(hash, Entry{Score: best, Depth: depth, Type: Exact, BestMove: bestMove})
	return bestMove, best, true
}

// IterativeDeepen runs FindBestMove for depth 1..maxDepth, invoking
// onInfo after each completed iteration (spec.md §4.8's "evaluation
// mode"). If the stop flag is set mid-iteration, the interrupted
// iteration's partial result (the best root move examined so far) is
// reported and returned, and no deeper iteration starts.
func (s *Searcher) IterativeDeepen(pos *chess.Position, maxDepth int, onInfo func(Stats, int32, []chess.Move)) (chess.Move, int32) {
	var bestMove chess.Move
	var bestScore int32

	for depth := 1; depth <= maxDepth; depth++ {
		if s.State.Stop.Load() {
			break
		}
		m, score, ok := s.FindBestMove(pos, depth)
		if !ok {
			break
		}
		bestMove, bestScore = m, score
		if onInfo != nil {
			onInfo(Stats{Depth: depth, Nodes: s.State.Nodes}, score, s.principalVariation(pos, maxDepth))
		}
		if s.State.Stop.Load() {
			break
		}
	}
	return bestMove, bestScore
}

// principalVariation follows the chain of TT best moves from pos,
// stopping at an unknown node, a terminal position, or limit plies.
func (s *Searcher) principalVariation(pos *chess.Position, limit int) []chess.Move {
	pv := make([]chess.Move, 0, limit)
	cur := pos
	for i := 0; i < limit; i++ {
		e, ok := s.State.TT.Probe(cur.Hash())
		if !ok || e.BestMove == chess.NoMove {
			break
		}
		pv = append(pv, e.BestMove)
		cur = cur.Apply(e.BestMove)
	}
	return pv
}

// alphabeta is the recursive negamax search: positive scores always
// favor pos.Turn. ply counts plies from the search root (used for
// killer-table indexing and mate-distance scoring).
func (s *Searcher) alphabeta(pos *chess.Position, depth int, alpha, beta int32, ply int) int32 {
	hash := pos.Hash()
	s.State.Repetition[hash]++
	if s.State.Repetition[hash] >= 3 {
		s.State.Repetition[hash]--
		return DrawScore
	}

	origAlpha := alpha

	if e, ok := s.State.TT.Probe(hash); ok && e.Depth >= depth {
		switch e.Type {
		case Exact:
			s.State.Repetition[hash]--
			return e.Score
		case LowerBound:
			if e.Score > alpha {
				alpha = e.Score
			}
		case UpperBound:
			if e.Score < beta {
				beta = e.Score
			}
		}
		if alpha >= beta {
			s.State.Repetition[hash]--
			return e.Score
		}
	}

	legal := chess.GenerateLegalMoves(pos)
	result := chess.Classify(pos, s.State.Repetition[hash], legal)
	if result != chess.Ongoing {
		score := terminalScore(pos, result, ply)
		s.State.TT.Store(hash, Entry{Score: score, Depth: depth, Type: Exact})
		s.State.Repetition[hash]--
		return score
	}

	if depth <= 0 || s.State.Stop.Load() {
		score := s.quiescence(pos, alpha, beta, s.MaxQPly)
		s.State.TT.Store(hash, Entry{Score: score, Depth: depth, Type: classifyBound(score, origAlpha, beta)})
		s.State.Repetition[hash]--
		return score
	}

	ttMove := chess.NoMove
	if e, ok := s.State.TT.Probe(hash); ok {
		ttMove = e.BestMove
	}
	s.State.ordering.orderMoves(pos, legal, ttMove, ply)

	const inf = MateScore + 1
	best := int32(-inf)
	bestMove := chess.NoMove

	for _, m := range legal {
		if s.State.Stop.Load() {
			break
		}
		s.State.Nodes++
		child := pos.Apply(m)
		score := -s.alphabeta(child, depth-1, -beta, -alpha, ply+1)
		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !m.IsCapture() && m.Promotion() == chess.NoPieceType {
				s.State.ordering.recordKiller(ply, m)
				s.State.ordering.recordHistory(m, depth)
			}
			break
		}
	}

	s.State.TT.Store(hash, Entry{Score: best, Depth: depth, Type: classifyBound(best, origAlpha, beta), BestMove: bestMove})
	s.State.Repetition[hash]--
	return best
}

// quiescence extends search past depth 0 along captures and
// promotions to escape the horizon effect (spec.md §4.8).
func (s *Searcher) quiescence(pos *chess.Position, alpha, beta int32, qPly int) int32 {
	standPat := evalRelative(pos)
	if qPly == 0 {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	tactical := chess.GenerateTacticalMoves(pos)
	orderTacticalMoves(pos, tactical)

	best := standPat
	for _, m := range tactical {
		if s.State.Stop.Load() {
			break
		}
		s.State.Nodes++
		child := pos.Apply(m)
		score := -s.quiescence(child, -beta, -alpha, qPly-1)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
