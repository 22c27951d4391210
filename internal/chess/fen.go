package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFEN parses the six whitespace-separated FEN fields into a Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("chess: fen %q: want 6 fields, got %d", fen, len(fields))
	}

	pos := &Position{EnPassant: NoSquare}
	if err := parsePlacement(fields[0], pos); err != nil {
		return nil, fmt.Errorf("chess: fen %q: %w", fen, err)
	}
	switch fields[1] {
	case "w":
		pos.Turn = White
	case "b":
		pos.Turn = Black
	default:
		return nil, fmt.Errorf("chess: fen %q: bad active color %q", fen, fields[1])
	}
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				pos.Castling |= WhiteKingside
			case 'Q':
				pos.Castling |= WhiteQueenside
			case 'k':
				pos.Castling |= BlackKingside
			case 'q':
				pos.Castling |= BlackQueenside
			default:
				return nil, fmt.Errorf("chess: fen %q: bad castling field %q", fen, fields[2])
			}
		}
	}
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("chess: fen %q: bad en passant field: %w", fen, err)
		}
		pos.EnPassant = sq
	}
	hm, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("chess: fen %q: bad halfmove clock: %w", fen, err)
	}
	pos.HalfmoveClock = hm
	fm, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("chess: fen %q: bad fullmove number: %w", fen, err)
	}
	pos.FullmoveNumber = fm

	return pos, nil
}

var fenLetterToPiece = map[byte]PieceType{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

func parsePlacement(field string, pos *Position) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("piece placement %q: want 8 ranks, got %d", field, len(ranks))
	}
	for i, rankField := range ranks {
		rank := 7 - i // FEN lists ranks 8th to 1st
		file := 0
		for j := 0; j < len(rankField); j++ {
			c := rankField[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, ok := fenLetterToPiece[c|0x20] // lower-case
			if !ok {
				return fmt.Errorf("piece placement %q: bad symbol %q", field, c)
			}
			if file > 7 {
				return fmt.Errorf("piece placement %q: rank %d overflows", field, rank+1)
			}
			color := Black
			if c|0x20 != c { // was upper-case
				color = White
			}
			pos.place(pt, color, MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return fmt.Errorf("piece placement %q: rank %d has %d files, want 8", field, rank+1, file)
		}
	}
	return nil
}

// FEN renders the position back into canonical Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		rank := 7 - i
		empty := 0
		for file := 0; file < 8; file++ {
			sq := MakeSquare(file, rank)
			pt, color, ok := p.PieceOn(sq)
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := pt.Letter()
			if color == Black {
				letter |= 0x20
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if i != 7 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

// SAN renders m in a best-effort Standard Algebraic Notation, given
// the legal-move list at this position (needed to disambiguate); the
// check/mate suffix comes from the position after m. The core engine only needs this to populate
// PGN-adjacent fields for external collaborators (spec.md §6.3); it is
// not used by the search or protocol internally.
func (p *Position) SAN(m Move, legal []Move) string {
	pt, _, _ := p.PieceOn(m.From())
	capture := m.IsCapture()

	if pt == King {
		df := m.To().File() - m.From().File()
		if df == 2 {
			return sanSuffix(p, m, "O-O")
		}
		if df == -2 {
			return sanSuffix(p, m, "O-O-O")
		}
	}

	var sb strings.Builder
	if pt != Pawn {
		sb.WriteByte(pt.Letter())
		sb.WriteString(disambiguate(p, m, legal))
	} else if capture {
		sb.WriteByte(byte('a' + m.From().File()))
	}
	if capture {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To().String())
	if promo := m.Promotion(); promo != NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte(promo.Letter())
	}
	return sanSuffix(p, m, sb.String())
}

// disambiguate returns the minimal from-square qualifier needed among
// other legal moves of the same piece type to the same destination.
func disambiguate(p *Position, m Move, legal []Move) string {
	pt, _, _ := p.PieceOn(m.From())
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range legal {
		if other == m || other.To() != m.To() {
			continue
		}
		opt, _, _ := p.PieceOn(other.From())
		if opt != pt {
			continue
		}
		ambiguous = true
		if other.From().File() == m.From().File() {
			sameFile = true
		}
		if other.From().Rank() == m.From().Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	if !sameFile {
		return string([]byte{byte('a' + m.From().File())})
	}
	if !sameRank {
		return string([]byte{byte('1' + m.From().Rank())})
	}
	return m.From().String()
}

func sanSuffix(p *Position, m Move, core string) string {
	next := p.Apply(m)
	if next.InCheck(next.Turn) {
		if len(GenerateLegalMoves(next)) == 0 {
			return core + "#"
		}
		return core + "+"
	}
	return core
}
