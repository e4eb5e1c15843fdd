package board

import "strings"

// Move describes a single legal or pseudo-legal move.
// CapturedAt differs from To only for en passant.
type Move struct {
	From, To   Square
	Capture    bool
	Captured   Piece
	CapturedAt Square
	EnPassant  bool
	Promotion  PieceType
}

// IsCastle reports whether a king move spans two columns.
func (m Move) IsCastle(moved Piece) bool {
	d := m.To.Col - m.From.Col
	return moved.Type() == PieceTypeKing && (d == 2 || d == -2)
}

// String produces the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	str := m.From.String() + m.To.String()
	if m.Promotion != PieceTypeNone {
		str += strings.ToLower(PieceFromType(White, m.Promotion).String())
	}
	return str
}

// promotionOrder lists promotion choices; the queen comes first so FindMove prefers it.
var promotionOrder = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}
