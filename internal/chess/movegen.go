package chess

// GeneratePseudoLegalMoves produces every move obeying piece-movement
// rules, including captures, en passant, castling and promotions,
// without checking whether the mover's own king would end up in check.
func GeneratePseudoLegalMoves(p *Position) []Move {
	moves := make([]Move, 0, 48)
	us, them := p.Turn, p.Turn.Opposite()
	ownPieces := p.ColorBB[us]

	for pt := Pawn; pt <= King; pt++ {
		for bb := p.PieceBB[pt] & ownPieces; bb != 0; {
			var from Square
			from, bb = bb.PopLSB()
			switch pt {
			case Pawn:
				genPawnMoves(p, from, us, them, &moves)
			case Knight:
				appendTargets(p, knightAttacks[from], from, ownPieces, them, &moves)
			case King:
				appendTargets(p, kingAttacks[from], from, ownPieces, them, &moves)
			case Bishop:
				appendTargets(p, bishopAttacks(from, p.Occupied), from, ownPieces, them, &moves)
			case Rook:
				appendTargets(p, rookAttacks(from, p.Occupied), from, ownPieces, them, &moves)
			case Queen:
				appendTargets(p, queenAttacks(from, p.Occupied), from, ownPieces, them, &moves)
			}
		}
	}

	genCastlingMoves(p, us, &moves)
	return moves
}

// appendTargets appends one move per destination in attack, excluding
// own-occupied squares, marking destinations occupied by them as captures.
func appendTargets(p *Position, attack Bitboard, from Square, ownPieces Bitboard, them Color, moves *[]Move) {
	for bb := attack &^ ownPieces; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		*moves = append(*moves, NewMove(from, to, NoPieceType, p.ColorBB[them].Test(to)))
	}
}

func genPawnMoves(p *Position, from Square, us, them Color, moves *[]Move) {
	forward := 1
	startRank, lastRank := 1, 7
	if us == Black {
		forward = -1
		startRank, lastRank = 6, 0
	}

	// Single push.
	if to, ok := from.TryOffset(0, forward); ok && !p.Occupied.Test(to) {
		addPawnMove(from, to, to.Rank() == lastRank, false, moves)

		// Double push from the home rank, only if both squares are empty.
		if from.Rank() == startRank {
			if to2, ok2 := from.TryOffset(0, 2*forward); ok2 && !p.Occupied.Test(to2) {
				*moves = append(*moves, NewMove(from, to2, NoPieceType, false))
			}
		}
	}

	// Diagonal captures, including en passant.
	for _, df := range [2]int{-1, 1} {
		to, ok := from.TryOffset(df, forward)
		if !ok {
			continue
		}
		if p.ColorBB[them].Test(to) {
			addPawnMove(from, to, to.Rank() == lastRank, true, moves)
		} else if p.EnPassant != NoSquare && to == p.EnPassant {
			// En passant is encoded as an ordinary capturing move onto
			// the en-passant target square (spec's canonical "treat as
			// capture" choice, used for MVV-LVA and halfmove reset).
			*moves = append(*moves, NewMove(from, to, NoPieceType, true))
		}
	}
}

func addPawnMove(from, to Square, isPromotion, isCapture bool, moves *[]Move) {
	if !isPromotion {
		*moves = append(*moves, NewMove(from, to, NoPieceType, isCapture))
		return
	}
	for _, promo := range PromotionPieces {
		*moves = append(*moves, NewMove(from, to, promo, isCapture))
	}
}

func genCastlingMoves(p *Position, us Color, moves *[]Move) {
	rank := 0
	kingside, queenside := WhiteKingside, WhiteQueenside
	if us == Black {
		rank = 7
		kingside, queenside = BlackKingside, BlackQueenside
	}
	king := MakeSquare(4, rank)

	if p.Castling.Has(kingside) {
		f, g := MakeSquare(5, rank), MakeSquare(6, rank)
		if !p.Occupied.Test(f) && !p.Occupied.Test(g) {
			*moves = append(*moves, NewMove(king, g, NoPieceType, false))
		}
	}
	if p.Castling.Has(queenside) {
		b, c, d := MakeSquare(1, rank), MakeSquare(2, rank), MakeSquare(3, rank)
		if !p.Occupied.Test(b) && !p.Occupied.Test(c) && !p.Occupied.Test(d) {
			*moves = append(*moves, NewMove(king, c, NoPieceType, false))
		}
	}
}

// GenerateLegalMoves filters the pseudo-legal moves down to those that
// do not leave the mover's own king in check, and additionally forbid
// castling through or out of check.
func GenerateLegalMoves(p *Position) []Move {
	pseudo := GeneratePseudoLegalMoves(p)
	legal := make([]Move, 0, len(pseudo))
	us := p.Turn

	for _, m := range pseudo {
		if isCastle(p, m) && !castlingPathSafe(p, m, us) {
			continue
		}
		next := p.Apply(m)
		if !next.IsSquareAttacked(next.KingSquare(us), us.Opposite()) {
			legal = append(legal, m)
		}
	}
	return legal
}

func isCastle(p *Position, m Move) bool {
	pt, _, _ := p.PieceOn(m.From())
	if pt != King {
		return false
	}
	df := m.To().File() - m.From().File()
	return df == 2 || df == -2
}

// castlingPathSafe checks that the king is not currently in check and
// does not pass through or land on an attacked square.
func castlingPathSafe(p *Position, m Move, us Color) bool {
	rank := m.From().Rank()
	them := us.Opposite()
	if p.IsSquareAttacked(m.From(), them) {
		return false
	}
	step := 1
	if m.To().File() < m.From().File() {
		step = -1
	}
	for f := m.From().File(); f != m.To().File(); f += step {
		if p.IsSquareAttacked(MakeSquare(f, rank), them) {
			return false
		}
	}
	return !p.IsSquareAttacked(m.To(), them)
}

// GenerateTacticalMoves returns only captures and promotions, in
// generation order (the caller does any ordering); used to seed
// quiescence search.
func GenerateTacticalMoves(p *Position) []Move {
	all := GenerateLegalMoves(p)
	out := all[:0:0]
	for _, m := range all {
		if m.IsCapture() || m.Promotion() != NoPieceType {
			out = append(out, m)
		}
	}
	return out
}
