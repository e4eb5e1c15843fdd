// Package peer encodes moves for exchange with a remote opponent.
//
// A move travels as a single line:
//
//	MOVE|<fromRow>,<fromCol>|<toRow>,<toCol>|<color>[|<promotion>]
//
// Rows and columns use the board's grid coordinates (row 0 is black's back
// rank). The promotion field is a lower-case piece letter and is only present
// for pawn moves onto the last rank.
package peer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chess-core/board"
)

const tag = "MOVE"

var (
	// ErrMalformed indicates a line that is not a well formed move message.
	ErrMalformed = errors.New("malformed move message")

	// ErrWrongColor indicates a move sent for the side that is not to move.
	ErrWrongColor = errors.New("move sent out of turn")
)

// Message is a decoded move line. Promotion is PieceTypeNone unless the line
// carried a promotion field.
type Message struct {
	From, To  board.Square
	Color     board.Color
	Promotion board.PieceType
}

// Encode formats m, played by c, as a move line.
func Encode(m board.Move, c board.Color) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s|%d,%d|%d,%d|%s", tag, m.From.Row, m.From.Col, m.To.Row, m.To.Col, c)
	if m.Promotion != board.PieceTypeNone {
		sb.WriteByte('|')
		sb.WriteString(strings.ToLower(board.PieceFromType(board.White, m.Promotion).String()))
	}
	return sb.String()
}

// Decode parses a move line. Surrounding whitespace is ignored.
func Decode(line string) (Message, error) {
	fields := strings.Split(strings.TrimSpace(line), "|")
	if len(fields) != 4 && len(fields) != 5 {
		return Message{}, fmt.Errorf("%w: want 4 or 5 fields, got %d", ErrMalformed, len(fields))
	}
	if fields[0] != tag {
		return Message{}, fmt.Errorf("%w: unknown tag %q", ErrMalformed, fields[0])
	}

	var msg Message
	var err error
	if msg.From, err = parseSquare(fields[1]); err != nil {
		return Message{}, err
	}
	if msg.To, err = parseSquare(fields[2]); err != nil {
		return Message{}, err
	}

	switch strings.ToLower(fields[3]) {
	case board.White.String():
		msg.Color = board.White
	case board.Black.String():
		msg.Color = board.Black
	default:
		return Message{}, fmt.Errorf("%w: unknown color %q", ErrMalformed, fields[3])
	}

	if len(fields) == 5 {
		if msg.Promotion, err = parsePromotion(fields[4]); err != nil {
			return Message{}, err
		}
	}
	return msg, nil
}

func parseSquare(field string) (board.Square, error) {
	rc := strings.Split(field, ",")
	if len(rc) != 2 {
		return board.NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformed, field)
	}
	row, err1 := strconv.Atoi(strings.TrimSpace(rc[0]))
	col, err2 := strconv.Atoi(strings.TrimSpace(rc[1]))
	if err1 != nil || err2 != nil {
		return board.NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformed, field)
	}
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return board.NoSquare, fmt.Errorf("%w: square %q off the board", ErrMalformed, field)
	}
	return board.Sq(row, col), nil
}

func parsePromotion(field string) (board.PieceType, error) {
	switch strings.ToLower(field) {
	case "q":
		return board.PieceTypeQueen, nil
	case "r":
		return board.PieceTypeRook, nil
	case "b":
		return board.PieceTypeBishop, nil
	case "n":
		return board.PieceTypeKnight, nil
	}
	return board.PieceTypeNone, fmt.Errorf("%w: bad promotion %q", ErrMalformed, field)
}

// Resolve looks the message up in the legal moves of s. Without a promotion
// field a promoting pawn move resolves to the queen promotion.
func Resolve(s *board.State, msg Message) (board.Move, error) {
	if msg.Color != s.Turn() {
		return board.Move{}, fmt.Errorf("%w: %s to move", ErrWrongColor, s.Turn())
	}
	var m board.Move
	var ok bool
	if msg.Promotion != board.PieceTypeNone {
		m, ok = s.FindPromotion(msg.From, msg.To, msg.Promotion)
	} else {
		m, ok = s.FindMove(msg.From, msg.To)
	}
	if !ok {
		return board.Move{}, fmt.Errorf("%v-%v: %w", msg.From, msg.To, board.ErrIllegalMove)
	}
	return m, nil
}

// Apply decodes line, validates it against s and plays it. On any error s is
// left unchanged.
func Apply(s *board.State, line string) (board.Move, error) {
	msg, err := Decode(line)
	if err != nil {
		return board.Move{}, err
	}
	m, err := Resolve(s, msg)
	if err != nil {
		return board.Move{}, err
	}
	if !s.MakeMove(m) {
		return board.Move{}, fmt.Errorf("%v: %w", m, board.ErrIllegalMove)
	}
	return m, nil
}
