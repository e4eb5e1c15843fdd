package board

import "golang.org/x/exp/slices"

// Pin relates a pinned piece to the slider pinning it against its own king.
type Pin struct {
	Pinned, Pinner Square
}

// Check records a piece giving check. Sliding checks can be blocked.
type Check struct {
	Attacker, King Square
	Sliding        bool
}

// Moveset is the result of the last refresh: legal moves for the side to move,
// attacked squares for both colors, and checks against the side to move.
// Pins lists pins held by both colors; the mover's come first, followed by
// those the side to move holds for the next ply. Only pins whose Pinned square
// belongs to the side to move restrict Legal.
type Moveset struct {
	Legal  []Move
	Danger [8][8]Danger
	Pins   []Pin
	Checks []Check
}

// State represents the board, side to move, en passant state and terminal flags.
// It is only mutated through MakeMove.
type State struct {
	grid [8][8]Piece

	// Side to move (which player's turn it is)
	turn Color

	// En passant target square (the square skipped by the last double push, otherwise NoSquare)
	// and the color of the pawn that made the push.
	epTarget Square
	epColor  Color

	checkmate bool
	stalemate bool

	moves Moveset
}

func newState() *State {
	return &State{turn: White, epTarget: NoSquare}
}

// Turn reports which side is to play.
func (s *State) Turn() Color { return s.turn }

// Checkmate reports whether the side to move has been checkmated.
func (s *State) Checkmate() bool { return s.checkmate }

// Stalemate reports whether the side to move has no legal moves and is not in check.
func (s *State) Stalemate() bool { return s.stalemate }

// Terminal reports checkmate or stalemate.
func (s *State) Terminal() bool { return s.checkmate || s.stalemate }

// InCheck reports whether the side to move is in check.
func (s *State) InCheck() bool { return len(s.moves.Checks) > 0 }

// PieceAt returns the piece on a square, including its hasMoved/isPinned flags.
// Off-board squares read as NoPiece.
func (s *State) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return s.grid[sq.Row][sq.Col]
}

func (s *State) at(sq Square) Piece { return s.grid[sq.Row][sq.Col] }

func (s *State) set(sq Square, p Piece) { s.grid[sq.Row][sq.Col] = p }

// DangerAt returns the attack flags recorded for a square during the last refresh.
func (s *State) DangerAt(sq Square) Danger {
	if !sq.Valid() {
		return 0
	}
	return s.moves.Danger[sq.Row][sq.Col]
}

// EnPassantTarget returns the square skipped by the last double push, if any.
func (s *State) EnPassantTarget() (Square, bool) {
	return s.epTarget, s.epTarget.Valid()
}

// LegalMoves returns a copy of the legal moves for the side to move.
func (s *State) LegalMoves() []Move { return slices.Clone(s.moves.Legal) }

// NumLegalMoves returns the size of the legal move set without copying it.
func (s *State) NumLegalMoves() int { return len(s.moves.Legal) }

// Moveset returns a copy of the last computed moveset.
func (s *State) Moveset() Moveset {
	ms := s.moves
	ms.Legal = slices.Clone(ms.Legal)
	ms.Pins = slices.Clone(ms.Pins)
	ms.Checks = slices.Clone(ms.Checks)
	return ms
}

// FindMove returns the legal move between two squares. When the move is a
// promotion the queen promotion is returned.
func (s *State) FindMove(from, to Square) (Move, bool) {
	for _, m := range s.moves.Legal {
		if m.From == from && m.To == to {
			return m, true
		}
	}
	return Move{}, false
}

// FindPromotion returns the legal promotion to the given piece type.
func (s *State) FindPromotion(from, to Square, pt PieceType) (Move, bool) {
	for _, m := range s.moves.Legal {
		if m.From == from && m.To == to && m.Promotion == pt {
			return m, true
		}
	}
	return Move{}, false
}

// IsLegal reports whether m belongs to the current legal set.
func (s *State) IsLegal(m Move) bool {
	return slices.Contains(s.moves.Legal, m)
}

// Clone returns an independent copy. The grid, danger grid and flags are fixed-size
// arrays copied by value; only the moveset slices are reallocated.
func (s *State) Clone() *State {
	c := *s
	c.moves.Legal = slices.Clone(s.moves.Legal)
	c.moves.Pins = slices.Clone(s.moves.Pins)
	c.moves.Checks = slices.Clone(s.moves.Checks)
	return &c
}

// MakeMove applies a legal move and recomputes the moveset for the new side to move.
// A move that is not in the current legal set is rejected and the state is left untouched.
func (s *State) MakeMove(m Move) bool {
	if s.Terminal() || !s.IsLegal(m) {
		return false
	}
	s.apply(m)
	return true
}

// apply relocates pieces for a move already known to be legal.
func (s *State) apply(m Move) {
	p := s.at(m.From)
	c := p.Color()

	if m.EnPassant {
		s.set(m.CapturedAt, NoPiece)
	}

	placed := p.withMoved().withPinned(false)
	if m.Promotion != PieceTypeNone {
		placed = PieceFromType(c, m.Promotion).withMoved()
	}
	s.set(m.To, placed)
	s.set(m.From, NoPiece)

	if m.IsCastle(p) {
		row := m.From.Row
		rookFrom, rookTo := Square{row, 7}, Square{row, 5}
		if m.To.Col < m.From.Col {
			rookFrom, rookTo = Square{row, 0}, Square{row, 3}
		}
		s.set(rookTo, s.at(rookFrom).withMoved())
		s.set(rookFrom, NoPiece)
	}

	s.epTarget = NoSquare
	if p.Type() == PieceTypePawn && (m.To.Row-m.From.Row == 2 || m.From.Row-m.To.Row == 2) {
		s.epTarget = Square{(m.From.Row + m.To.Row) / 2, m.From.Col}
		s.epColor = c
	}

	s.turn = s.turn.Other()
	s.refresh()
}

// Refresh recomputes the moveset for the current position. It is idempotent.
func (s *State) Refresh() { s.refresh() }

// Attacked reports whether sq is attacked by the given color, scanning the grid
// directly rather than reading the danger annotations.
func (s *State) Attacked(sq Square, by Color) bool {
	return attackedOn(&s.grid, sq, by)
}

// KingSquare returns the square of the given color's king.
func (s *State) KingSquare(c Color) (Square, bool) {
	k := s.findKings()[c]
	return k, k.Valid()
}

func (s *State) findKings() [2]Square {
	kings := [2]Square{NoSquare, NoSquare}
	for r := int8(0); r < 8; r++ {
		for c := int8(0); c < 8; c++ {
			p := s.grid[r][c]
			if p.Type() == PieceTypeKing {
				kings[p.Color()] = Square{r, c}
			}
		}
	}
	return kings
}
