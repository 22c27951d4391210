// Package chess implements bitboard-based board representation, move
// generation, move application, Zobrist hashing and terminal-state
// classification for a standard (non-Chess960) game.
package chess

import "fmt"

// Color identifies a side to move.
type Color uint8

const (
	White Color = iota
	Black

	ColorCount = 2
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType identifies a figure without a color.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	PieceTypeCount = 7 // including NoPieceType
)

var pieceTypeLetters = [PieceTypeCount]byte{0, 'P', 'N', 'B', 'R', 'Q', 'K'}

// Letter returns the upper-case FEN/SAN letter for the piece type.
// Pawn returns 'P'; NoPieceType returns 0.
func (pt PieceType) Letter() byte {
	return pieceTypeLetters[pt]
}

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Square is a board square, 0..63, with square = rank*8 + file, rank 0
// being White's back rank.
type Square uint8

const NoSquare Square = 64

// MakeSquare builds a square from a file and rank, both 0..7.
func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file (0=a..7=h) of the square.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the rank (0=1st..7=8th) of the square.
func (sq Square) Rank() int { return int(sq) / 8 }

// TryOffset returns the square obtained by moving df files and dr ranks
// away from sq, and true, provided the result stays on the board.
func (sq Square) TryOffset(df, dr int) (Square, bool) {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return MakeSquare(f, r), true
}

// Bitboard returns the singleton bitboard for this square.
func (sq Square) Bitboard() Bitboard {
	return Bitboard(1) << uint(sq)
}

// ParseSquare parses algebraic notation ("a1".."h8").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	f, r := s[0], s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("chess: invalid square %q", s)
	}
	return MakeSquare(int(f-'a'), int(r-'1')), nil
}

func (sq Square) String() string {
	if sq == NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// CastlingRights packs the four independent castling-right bits.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	AllCastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether all bits of mask are set.
func (cr CastlingRights) Has(mask CastlingRights) bool {
	return cr&mask == mask
}

// String renders the FEN castling field ("KQkq" subset, or "-").
func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	s := ""
	if cr.Has(WhiteKingside) {
		s += "K"
	}
	if cr.Has(WhiteQueenside) {
		s += "Q"
	}
	if cr.Has(BlackKingside) {
		s += "k"
	}
	if cr.Has(BlackQueenside) {
		s += "q"
	}
	return s
}

// PromotionPieces lists the four legal promotion targets, in the order
// promotion moves are expanded during generation.
var PromotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// promoCode maps a promotion piece type to its 3-bit packed code and back.
// Code 0 means "no promotion".
var promoCode = map[PieceType]uint16{
	NoPieceType: 0,
	Queen:       1,
	Rook:        2,
	Bishop:      3,
	Knight:      4,
}

var codePromo = [5]PieceType{NoPieceType, Queen, Rook, Bishop, Knight}

// Move is a packed move record: 6 bits from, 6 bits to, 3 bits
// promotion piece (0 = none), 1 bit capture flag. Packing makes
// equality (needed for TT best-move comparison and killer-move
// matching) a plain integer compare.
type Move uint16

const NoMove Move = 0xFFFF

const (
	moveFromShift    = 0
	moveToShift      = 6
	movePromoShift   = 12
	moveCaptureShift = 15

	moveFromMask  = 0x3F
	moveToMask    = 0x3F
	movePromoMask = 0x7
)

// NewMove packs a move. promo may be NoPieceType.
func NewMove(from, to Square, promo PieceType, isCapture bool) Move {
	m := Move(from&moveFromMask) << moveFromShift
	m |= Move(to&moveToMask) << moveToShift
	m |= Move(promoCode[promo]) << movePromoShift
	if isCapture {
		m |= 1 << moveCaptureShift
	}
	return m
}

func (m Move) From() Square { return Square((m >> moveFromShift) & moveFromMask) }
func (m Move) To() Square   { return Square((m >> moveToShift) & moveToMask) }

// Promotion returns the promoted-to piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	return codePromo[(m>>movePromoShift)&movePromoMask]
}

// IsCapture reports whether the move was recorded as a capture,
// including en passant (spec's canonical encoding: en passant counts
// as a capture for MVV-LVA ordering and halfmove-clock reset).
func (m Move) IsCapture() bool {
	return (m>>moveCaptureShift)&1 != 0
}

// UCI renders the move in "<from><to>[promo]" syntax, e.g. e2e4, a7a8q.
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPieceType {
		s += string(lowerLetter(p.Letter()))
	}
	return s
}

func lowerLetter(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func (m Move) String() string { return m.UCI() }
