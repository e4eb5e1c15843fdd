package board

import (
	"fmt"
	"strings"
)

// StartLayout is the layout string for the standard initial chess position.
const StartLayout = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// FENStartPos is the full FEN string for the standard initial position.
const FENStartPos = StartLayout + " w KQkq - 0 1"

// NewGame returns the standard starting position with white to move.
func NewGame() *State { return Initialize(StartLayout) }

// Initialize parses a slash-separated layout string into a new State with
// white to move. The first field is row 0. A digit skips that many empty
// squares; unrecognized characters are skipped rather than rejected, and
// pieces past the eighth column are dropped.
//
// Castling rights cannot be recovered from a bare layout: unless the layout is
// exactly StartLayout every piece is marked as having moved.
func Initialize(layout string) *State {
	s := newState()
	placeRanks(&s.grid, strings.Split(layout, "/"), false)
	if layout != StartLayout {
		s.markAllMoved()
	}
	s.refresh()
	return s
}

// placeRanks fills the grid from rank fields. In strict mode the first
// unrecognized character is reported instead of skipped.
func placeRanks(grid *[8][8]Piece, ranks []string, strict bool) error {
	for row := 0; row < 8 && row < len(ranks); row++ {
		col := 0
		for _, ch := range ranks[row] {
			if ch >= '1' && ch <= '8' {
				// Digit: skip that many files (empty squares)
				col += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				if strict {
					return fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidFEN, ch)
				}
				continue
			}
			if col >= 8 {
				if strict {
					return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, row+1)
				}
				continue
			}
			grid[row][col] = piece
			col++
		}
	}
	return nil
}

func (s *State) markAllMoved() {
	for r := range s.grid {
		for c := range s.grid[r] {
			if !s.grid[r][c].IsEmpty() {
				s.grid[r][c] = s.grid[r][c].withMoved()
			}
		}
	}
}

// Layout encodes the piece placement back into a layout string.
func (s *State) Layout() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		emptyCount := 0
		for col := 0; col < 8; col++ {
			p := s.grid[row][col]
			if p.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseFEN parses a FEN string and returns a new State set up to that position.
// Unlike Initialize it is strict, and it restores castling rights and the en
// passant square. The move clocks are accepted but ignored.
func ParseFEN(fen string) (*State, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: not enough fields", ErrInvalidFEN)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: incorrect number of ranks", ErrInvalidFEN)
	}
	s := newState()
	if err := placeRanks(&s.grid, ranks, true); err != nil {
		return nil, err
	}
	s.markAllMoved()

	switch fields[1] {
	case "w":
		s.turn = White
	case "b":
		s.turn = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			var c Color
			var rookCol int8
			switch ch {
			case 'K':
				c, rookCol = White, 7
			case 'Q':
				c, rookCol = White, 0
			case 'k':
				c, rookCol = Black, 7
			case 'q':
				c, rookCol = Black, 0
			default:
				return nil, fmt.Errorf("%w: castling field %q", ErrInvalidFEN, fields[2])
			}
			row := backRow(c)
			king, rook := Square{row, 4}, Square{row, rookCol}
			if s.at(king).Ident() == PieceFromType(c, PieceTypeKing) && s.at(rook).Ident() == PieceFromType(c, PieceTypeRook) {
				s.set(king, s.at(king).Unmoved())
				s.set(rook, s.at(rook).Unmoved())
			}
		}
	}

	if fields[3] != "-" {
		sq, ok := ParseSquare(fields[3])
		if !ok {
			return nil, fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, fields[3])
		}
		s.epTarget = sq
		s.epColor = s.turn.Other()
	}

	s.refresh()
	return s, nil
}

// FEN renders the position as a FEN string. Castling rights are derived from
// unmoved king and rook pairs; the move clocks are always "0 1".
func (s *State) FEN() string {
	var sb strings.Builder
	sb.WriteString(s.Layout())
	if s.turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := ""
	for _, c := range [2]Color{White, Black} {
		row := backRow(c)
		king := s.at(Square{row, 4})
		if king.Ident() != PieceFromType(c, PieceTypeKing) || king.HasMoved() {
			continue
		}
		k, q := "K", "Q"
		if c == Black {
			k, q = "k", "q"
		}
		if s.castleRook(Square{row, 7}, c) {
			rights += k
		}
		if s.castleRook(Square{row, 0}, c) {
			rights += q
		}
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)
	sb.WriteByte(' ')
	sb.WriteString(s.epTarget.String())
	sb.WriteString(" 0 1")
	return sb.String()
}
