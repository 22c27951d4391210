package chess

// Apply returns the position resulting from playing m in p. It is a
// pure function: p is never mutated, so callers may use it for both
// "what if" probing and for committing a move.
func (p *Position) Apply(m Move) *Position {
	next := p.Clone()
	us, them := p.Turn, p.Turn.Opposite()

	movingPT, _, ok := p.PieceOn(m.From())
	if !ok {
		panic("chess: apply: no piece on from-square (bug in move generation)")
	}

	isPawnMove := movingPT == Pawn
	isEnPassant := isPawnMove && m.To() == p.EnPassant && !p.Occupied.Test(m.To())

	// 1. Remove any captured piece. En passant captures the pawn
	// standing behind the target square, not on it.
	captured := m.IsCapture()
	if isEnPassant {
		capSq, _ := m.To().TryOffset(0, map[Color]int{White: -1, Black: 1}[us])
		next.remove(Pawn, them, capSq)
	} else if captured {
		capPT, _, ok := p.PieceOn(m.To())
		if !ok {
			panic("chess: apply: capture move has no piece on destination")
		}
		next.remove(capPT, them, m.To())
	}

	// 2. Move the piece.
	next.remove(movingPT, us, m.From())
	placedPT := movingPT
	if promo := m.Promotion(); promo != NoPieceType {
		placedPT = promo // 3. Promotion replaces the pawn.
	}
	next.place(placedPT, us, m.To())

	// 4. Castling also relocates the rook.
	if movingPT == King {
		df := m.To().File() - m.From().File()
		rank := m.From().Rank()
		if df == 2 {
			next.remove(Rook, us, MakeSquare(7, rank))
			next.place(Rook, us, MakeSquare(5, rank))
		} else if df == -2 {
			next.remove(Rook, us, MakeSquare(0, rank))
			next.place(Rook, us, MakeSquare(3, rank))
		}
	}

	// 5. Update castling rights.
	next.Castling &^= lostCastlingRights(m.From())
	next.Castling &^= lostCastlingRights(m.To())

	// 6. Halfmove clock.
	if isPawnMove || captured {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock = p.HalfmoveClock + 1
	}

	// 7. Fullmove number increments after Black moves.
	if us == Black {
		next.FullmoveNumber = p.FullmoveNumber + 1
	}

	// 8. En-passant target: set iff this was a pawn double push.
	next.EnPassant = NoSquare
	if isPawnMove {
		dr := m.To().Rank() - m.From().Rank()
		if dr == 2 || dr == -2 {
			epRank := (m.From().Rank() + m.To().Rank()) / 2
			next.EnPassant = MakeSquare(m.From().File(), epRank)
		}
	}

	// 9. Flip turn; Occupied was kept consistent by place/remove.
	next.Turn = them

	return next
}

// lostCastlingRights returns the castling-right bits that must be
// cleared whenever sq stops holding its original king or rook — either
// because the piece on it moved, or because an opponent captured on it.
func lostCastlingRights(sq Square) CastlingRights {
	switch sq {
	case MakeSquare(4, 0):
		return WhiteKingside | WhiteQueenside
	case MakeSquare(7, 0):
		return WhiteKingside
	case MakeSquare(0, 0):
		return WhiteQueenside
	case MakeSquare(4, 7):
		return BlackKingside | BlackQueenside
	case MakeSquare(7, 7):
		return BlackKingside
	case MakeSquare(0, 7):
		return BlackQueenside
	default:
		return 0
	}
}
