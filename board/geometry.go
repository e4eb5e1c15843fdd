package board

// Square represents a board position by row and column, both in [0,8).
// Row 0 is the first rank field of a layout string (black's back rank).
type Square struct {
	Row, Col int8
}

// NoSquare marks an absent square (no en passant target, no captured square).
var NoSquare = Square{-1, -1}

// Sq is shorthand for constructing a Square.
func Sq(row, col int) Square { return Square{int8(row), int8(col)} }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool { return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8 }

// Add offsets the square; the result may be off the board.
func (s Square) Add(dr, dc int8) Square { return Square{s.Row + dr, s.Col + dc} }

// String converts the square to algebraic coordinates (e.g., Sq(6,4) -> "e2").
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.Col), '8' - byte(s.Row)})
}

// ParseSquare converts algebraic coordinates ("e2") to a Square.
func ParseSquare(alg string) (Square, bool) {
	if len(alg) != 2 {
		return NoSquare, false
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return Sq(int('8'-rank), int(file-'a')), true
}

// direction is a (row, col) step.
type direction struct{ dr, dc int8 }

// Rook directions: N, S, E, W (N is toward row 0).
var rookDirs = [4]direction{{-1, 0}, {1, 0}, {0, 1}, {0, -1}}

// Bishop directions: NE, NW, SE, SW.
var bishopDirs = [4]direction{{-1, 1}, {-1, -1}, {1, 1}, {1, -1}}

// Queen and king share all eight directions.
var queenDirs = [8]direction{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
	{-1, 1}, {-1, -1}, {1, 1}, {1, -1},
}

var knightOffsets = [8]direction{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

// slideDirs returns the ray set for a sliding piece type.
func slideDirs(pt PieceType) []direction {
	switch pt {
	case PieceTypeBishop:
		return bishopDirs[:]
	case PieceTypeRook:
		return rookDirs[:]
	case PieceTypeQueen:
		return queenDirs[:]
	}
	return nil
}

// pawnDir is the row step of a pawn of the given color.
func pawnDir(c Color) int8 {
	if c == White {
		return -1
	}
	return 1
}

func pawnHomeRow(c Color) int8 {
	if c == White {
		return 6
	}
	return 1
}

func promotionRow(c Color) int8 {
	if c == White {
		return 0
	}
	return 7
}

func backRow(c Color) int8 {
	if c == White {
		return 7
	}
	return 0
}

// collinear reports whether a, b and c lie on one line (cross product is zero).
func collinear(a, b, c Square) bool {
	return int(b.Row-a.Row)*int(c.Col-a.Col) == int(b.Col-a.Col)*int(c.Row-a.Row)
}

// between reports whether m lies strictly between a and b on a rank, file or diagonal.
func between(a, b, m Square) bool {
	if !collinear(a, b, m) || m == a || m == b {
		return false
	}
	return within(a.Row, b.Row, m.Row) && within(a.Col, b.Col, m.Col)
}

func within(x, y, v int8) bool {
	if x > y {
		x, y = y, x
	}
	return v >= x && v <= y
}
