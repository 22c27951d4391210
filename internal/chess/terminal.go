package chess

// Result classifies a position as ongoing or one of the terminal kinds.
// Exactly one of these holds for any position.
type Result uint8

const (
	Ongoing Result = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	InsufficientMaterial
	ThreefoldRepetition
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move draw"
	case InsufficientMaterial:
		return "insufficient material"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return "unknown"
	}
}

// Classify decides the game-theoretic state of p, in the order spec'd:
// threefold, fifty-move, insufficient material, no-legal-moves
// (checkmate/stalemate), else ongoing. repetitionCount is the number
// of times p's hash has occurred so far in the game line (including
// the current occurrence). legalMoves lets the caller reuse an
// already-generated move list; pass nil to have it generated here.
func Classify(p *Position, repetitionCount int, legalMoves []Move) Result {
	if repetitionCount >= 3 {
		return ThreefoldRepetition
	}
	if p.HalfmoveClock >= 100 {
		return FiftyMoveDraw
	}
	if isInsufficientMaterial(p) {
		return InsufficientMaterial
	}
	if legalMoves == nil {
		legalMoves = GenerateLegalMoves(p)
	}
	if len(legalMoves) == 0 {
		if p.InCheck(p.Turn) {
			return Checkmate
		}
		return Stalemate
	}
	return Ongoing
}

// Winner returns the side-to-move for a Checkmate result (the loser),
// matching spec.md's "Checkmate(side_to_move)" notation.
func (p *Position) Winner() Color {
	return p.Turn
}

// isInsufficientMaterial mirrors the original engine's per-side checks
// (chess_lib/terminal_states.rs's is_insufficient_material): each case
// requires one side to be completely bare (king only, besides pawns/
// rooks/queens already ruled out above) before the other side's minor
// pieces are judged insufficient to force mate. A knight or bishop on
// both sides at once is always live material, regardless of count.
func isInsufficientMaterial(p *Position) bool {
	if p.PieceBB[Pawn] != 0 || p.PieceBB[Rook] != 0 || p.PieceBB[Queen] != 0 {
		return false
	}
	knights := p.PieceBB[Knight]
	bishops := p.PieceBB[Bishop]

	whiteKnights := (knights & p.ColorBB[White]).Count()
	blackKnights := knights.Count() - whiteKnights
	whiteBishops := (bishops & p.ColorBB[White]).Count()
	blackBishops := bishops.Count() - whiteBishops

	whiteMinors := whiteKnights + whiteBishops
	blackMinors := blackKnights + blackBishops

	if whiteMinors == 0 && blackMinors == 0 {
		return true // K vs K
	}
	if whiteMinors+blackMinors == 1 {
		return true // K+minor vs K
	}

	// From here on, insufficiency requires one side bare (0 minors) and
	// the other side's minors to be a single non-mating shape.
	var ownKnights, ownBishops Bitboard
	switch {
	case whiteMinors == 0:
		ownKnights = knights & p.ColorBB[Black]
		ownBishops = bishops & p.ColorBB[Black]
	case blackMinors == 0:
		ownKnights = knights & p.ColorBB[White]
		ownBishops = bishops & p.ColorBB[White]
	default:
		return false // minors on both sides: always sufficient
	}

	if ownBishops == 0 {
		return true // K+N(s) vs K, any number, including K+NN vs K (unforced)
	}
	if ownKnights == 0 {
		// All of the side's bishops must sit on the same square color to
		// be insufficient (K+same-colored-bishops vs K).
		lightSquare := Bitboard(0x55AA55AA55AA55AA)
		onLight := (ownBishops & lightSquare).Count()
		onDark := ownBishops.Count() - onLight
		return onLight == 0 || onDark == 0
	}
	return false
}
