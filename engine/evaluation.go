package engine

import "chess-core/board"

// Score constants. Scores are always from the searching color's point of view.
const (
	MateScore int32 = 100000
	DrawScore int32 = 0
	MaxScore  int32 = MateScore + 1
)

// PieceValue is the material value of each piece type, indexed by board.PieceType.
var PieceValue = [7]int32{
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 320,
	board.PieceTypeBishop: 330,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
	board.PieceTypeKing:   20000,
}

// Positional terms
var (
	CenterBonus         int32 = 20 // pawn or knight on d4, e4, d5, e5
	ExtendedCenterBonus int32 = 10 // pawn or knight elsewhere on c3-f6
	ExposedKingPenalty  int32 = 30 // king off its own back two ranks
)

// Evaluation scores a position for color. Checkmate and stalemate are decided
// from the flags the board computed on its last refresh.
func Evaluation(s *board.State, color board.Color) int32 {
	if s.Checkmate() {
		if s.Turn() == color {
			return -MateScore
		}
		return MateScore
	}
	if s.Stalemate() {
		return DrawScore
	}

	var score int32
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			sq := board.Sq(r, c)
			p := s.PieceAt(sq)
			if p.IsEmpty() {
				continue
			}
			v := PieceValue[p.Type()] + positionalScore(p, sq)
			if p.Color() == color {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}

func positionalScore(p board.Piece, sq board.Square) int32 {
	switch p.Type() {
	case board.PieceTypePawn, board.PieceTypeKnight:
		if isCenter(sq) {
			return CenterBonus
		}
		if isExtendedCenter(sq) {
			return ExtendedCenterBonus
		}
	case board.PieceTypeKing:
		if !onBackRanks(p.Color(), sq) {
			return -ExposedKingPenalty
		}
	}
	return 0
}

func isCenter(sq board.Square) bool {
	return sq.Row >= 3 && sq.Row <= 4 && sq.Col >= 3 && sq.Col <= 4
}

func isExtendedCenter(sq board.Square) bool {
	return sq.Row >= 2 && sq.Row <= 5 && sq.Col >= 2 && sq.Col <= 5
}

// White's back ranks are rows 6 and 7, black's rows 0 and 1.
func onBackRanks(c board.Color, sq board.Square) bool {
	if c == board.White {
		return sq.Row >= 6
	}
	return sq.Row <= 1
}
