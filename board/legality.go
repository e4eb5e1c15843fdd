package board

// refresh recomputes the moveset in two passes.
//
// The mover pass scans the side that just moved: its danger squares, the pins
// it holds against the side to move, and the checks it delivers. The responder
// pass then scans the side to move, recording the pins it holds for the next
// ply, and filters its pseudo-legal moves against what the mover pass found. Checks are therefore always known one pass before
// the moves they constrain are filtered.
func (s *State) refresh() {
	ctx := genContext{kings: s.findKings()}
	side := s.turn
	mover := side.Other()

	for r := range s.grid {
		for c := range s.grid[r] {
			s.grid[r][c] = s.grid[r][c].withPinned(false)
		}
	}

	// Mover pass.
	s.scan(mover, &ctx)
	for _, m := range ctx.moves {
		if m.To != ctx.kings[side] {
			continue
		}
		// Promotion captures onto the king expand to four moves from one attacker.
		if n := len(ctx.checks); n > 0 && ctx.checks[n-1].Attacker == m.From {
			continue
		}
		ctx.checks = append(ctx.checks, Check{Attacker: m.From, King: m.To, Sliding: s.at(m.From).IsSliding()})
	}

	// Responder pass.
	ctx.moves = ctx.moves[:0]
	ctx.castling = true
	s.scan(side, &ctx)

	for _, pin := range ctx.pins {
		s.set(pin.Pinned, s.at(pin.Pinned).withPinned(true))
	}

	s.moves = Moveset{
		Legal:  s.filter(&ctx),
		Danger: ctx.danger,
		Pins:   ctx.pins,
		Checks: ctx.checks,
	}

	s.checkmate, s.stalemate = false, false
	if len(s.moves.Legal) == 0 {
		if len(s.moves.Checks) > 0 {
			s.checkmate = true
		} else {
			s.stalemate = true
		}
	}
}

// filter reduces the responder's pseudo-legal moves to legal ones.
func (s *State) filter(ctx *genContext) []Move {
	side := s.turn
	enemy := side.Other()
	checks := ctx.checks

	legal := make([]Move, 0, len(ctx.moves))
	for _, m := range ctx.moves {
		p := s.at(m.From)

		if m.EnPassant {
			if s.safeAfter(m, side, ctx.kings[side]) {
				legal = append(legal, m)
			}
			continue
		}

		if p.Type() == PieceTypeKing {
			if ctx.danger[m.To.Row][m.To.Col].By(enemy) {
				continue
			}
			legal = append(legal, m)
			continue
		}

		// Double check: only the king may move.
		if len(checks) > 1 {
			continue
		}

		if p.IsPinned() {
			pin, _ := pinOf(ctx.pins, m.From)
			if !collinear(m.From, m.To, pin.Pinner) {
				continue
			}
		}

		if len(checks) == 1 {
			chk := checks[0]
			captures := m.Capture && m.CapturedAt == chk.Attacker
			blocks := chk.Sliding && between(chk.King, chk.Attacker, m.To)
			if !captures && !blocks {
				continue
			}
		}

		legal = append(legal, m)
	}
	return legal
}

func pinOf(pins []Pin, sq Square) (Pin, bool) {
	for _, pin := range pins {
		if pin.Pinned == sq {
			return pin, true
		}
	}
	return Pin{}, false
}

// safeAfter plays m on a scratch grid and reports whether the mover's king is
// left unattacked. En passant removes two pieces from their squares at once,
// which the single-piece pin scan cannot see.
func (s *State) safeAfter(m Move, side Color, king Square) bool {
	grid := s.grid
	grid[m.To.Row][m.To.Col] = grid[m.From.Row][m.From.Col]
	grid[m.From.Row][m.From.Col] = NoPiece
	if m.CapturedAt.Valid() && m.CapturedAt != m.To {
		grid[m.CapturedAt.Row][m.CapturedAt.Col] = NoPiece
	}
	if m.From == king {
		king = m.To
	}
	if !king.Valid() {
		return true
	}
	return !attackedOn(&grid, king, side.Other())
}
