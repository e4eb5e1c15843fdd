package board

// Piece constants and types for pieces and colors
type Piece uint8

// Piece type occupies the low three bits.
// Black pieces are encoded as (white piece | 8) so that
//   - piece & 7 gives the type in [1..6]
//   - piece & 8 != 0 indicates Black
//
// Bits 4 and 5 carry the hasMoved and isPinned flags.
const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8

	colorBit  Piece = 8
	movedBit  Piece = 16
	pinnedBit Piece = 32
	identMask Piece = 15
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Type returns the colorless type of the piece (ignores side and flags).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&colorBit != 0 {
		return Black
	}
	return White
}

// Ident strips the hasMoved and isPinned flags, leaving type and color.
func (p Piece) Ident() Piece { return p & identMask }

// IsEmpty reports whether the square holding p is empty.
func (p Piece) IsEmpty() bool { return p.Type() == PieceTypeNone }

// HasMoved reports whether the piece has left its starting square.
func (p Piece) HasMoved() bool { return p&movedBit != 0 }

// IsPinned reports whether the piece was found pinned to its king during the last refresh.
func (p Piece) IsPinned() bool { return p&pinnedBit != 0 }

func (p Piece) withMoved() Piece { return p | movedBit }

func (p Piece) withPinned(on bool) Piece {
	if on {
		return p | pinnedBit
	}
	return p &^ pinnedBit
}

// Unmoved returns the piece with its hasMoved flag cleared.
func (p Piece) Unmoved() Piece { return p &^ movedBit }

// IsSliding reports whether the piece moves along rays.
func (p Piece) IsSliding() bool {
	switch p.Type() {
	case PieceTypeBishop, PieceTypeRook, PieceTypeQueen:
		return true
	}
	return false
}

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= colorBit
	}
	return p
}

// Letter returns the layout character for the piece, uppercase for white.
func (p Piece) Letter() byte {
	letters := [7]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}
	ch := letters[p.Type()]
	if p.Color() == White && ch != '.' {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string { return string(p.Letter()) }

// pieceFromChar converts a layout character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Danger holds the per-square attack flags for both colors.
type Danger uint8

const (
	AttackedByWhite Danger = 1 << iota
	AttackedByBlack
)

func dangerFlag(c Color) Danger {
	if c == Black {
		return AttackedByBlack
	}
	return AttackedByWhite
}

// By reports whether the square is attacked by the given color.
func (d Danger) By(c Color) bool { return d&dangerFlag(c) != 0 }
