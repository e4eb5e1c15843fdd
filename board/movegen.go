package board

// genContext carries the per-refresh scratch state through generation.
// It is owned by a single refresh call so concurrent searches on separate
// clones never share it.
type genContext struct {
	kings  [2]Square
	moves  []Move
	danger [8][8]Danger
	pins   []Pin
	checks []Check

	// castling is only generated in the responder pass, once the enemy
	// danger squares for this position are known.
	castling bool
}

func (ctx *genContext) mark(sq Square, c Color) {
	ctx.danger[sq.Row][sq.Col] |= dangerFlag(c)
}

func (ctx *genContext) add(m Move) { ctx.moves = append(ctx.moves, m) }

// scan generates pseudo-legal moves, danger squares and pins for every piece of color c.
func (s *State) scan(c Color, ctx *genContext) {
	for r := int8(0); r < 8; r++ {
		for col := int8(0); col < 8; col++ {
			p := s.grid[r][col]
			if p.IsEmpty() || p.Color() != c {
				continue
			}
			from := Square{r, col}
			switch p.Type() {
			case PieceTypePawn:
				s.genPawn(from, c, ctx)
			case PieceTypeKnight:
				s.genKnight(from, c, ctx)
			case PieceTypeBishop, PieceTypeRook, PieceTypeQueen:
				s.genSlider(from, p, ctx)
			case PieceTypeKing:
				s.genKing(from, p, ctx)
			}
		}
	}
}

func (s *State) genPawn(from Square, c Color, ctx *genContext) {
	dir := pawnDir(c)

	one := from.Add(dir, 0)
	if one.Valid() && s.at(one).IsEmpty() {
		addPawnMove(ctx, c, Move{From: from, To: one, CapturedAt: NoSquare})
		if from.Row == pawnHomeRow(c) {
			two := one.Add(dir, 0)
			if two.Valid() && s.at(two).IsEmpty() {
				ctx.add(Move{From: from, To: two, CapturedAt: NoSquare})
			}
		}
	}

	for _, dc := range [2]int8{-1, 1} {
		t := from.Add(dir, dc)
		if !t.Valid() {
			continue
		}
		// Pawns threaten their diagonals whether or not anything stands there.
		ctx.mark(t, c)
		q := s.at(t)
		switch {
		case !q.IsEmpty() && q.Color() != c:
			addPawnMove(ctx, c, Move{From: from, To: t, Capture: true, Captured: q.Ident(), CapturedAt: t})
		case q.IsEmpty() && t == s.epTarget && s.epColor != c:
			behind := t.Add(-dir, 0)
			bp := s.at(behind)
			if bp.Type() == PieceTypePawn && bp.Color() == s.epColor {
				ctx.add(Move{From: from, To: t, Capture: true, Captured: bp.Ident(), CapturedAt: behind, EnPassant: true})
			}
		}
	}
}

// addPawnMove expands a move onto the last rank into the four promotions.
func addPawnMove(ctx *genContext, c Color, m Move) {
	if m.To.Row != promotionRow(c) {
		ctx.add(m)
		return
	}
	for _, pt := range promotionOrder {
		m.Promotion = pt
		ctx.add(m)
	}
}

func (s *State) genKnight(from Square, c Color, ctx *genContext) {
	for _, d := range knightOffsets {
		t := from.Add(d.dr, d.dc)
		if !t.Valid() {
			continue
		}
		ctx.mark(t, c)
		s.addStep(from, t, c, ctx)
	}
}

// addStep adds a non-sliding move onto an empty or enemy-occupied square.
func (s *State) addStep(from, to Square, c Color, ctx *genContext) {
	q := s.at(to)
	if q.IsEmpty() {
		ctx.add(Move{From: from, To: to, CapturedAt: NoSquare})
	} else if q.Color() != c {
		ctx.add(Move{From: from, To: to, Capture: true, Captured: q.Ident(), CapturedAt: to})
	}
}

func (s *State) genSlider(from Square, p Piece, ctx *genContext) {
	c := p.Color()
	for _, d := range slideDirs(p.Type()) {
		for t := from.Add(d.dr, d.dc); t.Valid(); t = t.Add(d.dr, d.dc) {
			ctx.mark(t, c)
			q := s.at(t)
			if q.IsEmpty() {
				ctx.add(Move{From: from, To: t, CapturedAt: NoSquare})
				continue
			}
			if q.Color() != c {
				ctx.add(Move{From: from, To: t, Capture: true, Captured: q.Ident(), CapturedAt: t})
				if q.Type() == PieceTypeKing {
					// The king does not shield the squares behind it from its attacker.
					for x := t.Add(d.dr, d.dc); x.Valid(); x = x.Add(d.dr, d.dc) {
						ctx.mark(x, c)
						if !s.at(x).IsEmpty() {
							break
						}
					}
				} else {
					s.scanPin(from, t, d, q.Color(), ctx)
				}
			}
			break
		}
	}
}

// scanPin continues past a capturable piece on the same ray looking for
// that piece's own king. Finding it means the piece is pinned.
func (s *State) scanPin(pinner, pinned Square, d direction, victim Color, ctx *genContext) {
	for x := pinned.Add(d.dr, d.dc); x.Valid(); x = x.Add(d.dr, d.dc) {
		q := s.at(x)
		if q.IsEmpty() {
			continue
		}
		if q.Type() == PieceTypeKing && q.Color() == victim {
			ctx.pins = append(ctx.pins, Pin{Pinned: pinned, Pinner: pinner})
		}
		return
	}
}

func (s *State) genKing(from Square, p Piece, ctx *genContext) {
	c := p.Color()
	for _, d := range queenDirs {
		t := from.Add(d.dr, d.dc)
		if !t.Valid() {
			continue
		}
		ctx.mark(t, c)
		s.addStep(from, t, c, ctx)
	}

	if !ctx.castling || p.HasMoved() || from != (Square{backRow(c), 4}) {
		return
	}
	enemy := c.Other()
	safe := func(sq Square) bool { return !ctx.danger[sq.Row][sq.Col].By(enemy) }
	if !safe(from) {
		return
	}
	row := from.Row
	// King side: f and g files empty and unattacked.
	if s.castleRook(Square{row, 7}, c) &&
		s.at(Square{row, 5}).IsEmpty() && s.at(Square{row, 6}).IsEmpty() &&
		safe(Square{row, 5}) && safe(Square{row, 6}) {
		ctx.add(Move{From: from, To: Square{row, 6}, CapturedAt: NoSquare})
	}
	// Queen side: b, c and d files empty; only c and d must be unattacked.
	if s.castleRook(Square{row, 0}, c) &&
		s.at(Square{row, 1}).IsEmpty() && s.at(Square{row, 2}).IsEmpty() && s.at(Square{row, 3}).IsEmpty() &&
		safe(Square{row, 3}) && safe(Square{row, 2}) {
		ctx.add(Move{From: from, To: Square{row, 2}, CapturedAt: NoSquare})
	}
}

func (s *State) castleRook(sq Square, c Color) bool {
	r := s.at(sq)
	return r.Type() == PieceTypeRook && r.Color() == c && !r.HasMoved()
}

// attackedOn scans outward from sq for any piece of color by that attacks it.
func attackedOn(grid *[8][8]Piece, sq Square, by Color) bool {
	at := func(x Square) Piece { return grid[x.Row][x.Col] }

	// Pawns attack from the row behind them relative to their direction.
	pr := -pawnDir(by)
	for _, dc := range [2]int8{-1, 1} {
		x := sq.Add(pr, dc)
		if x.Valid() && at(x).Ident() == PieceFromType(by, PieceTypePawn) {
			return true
		}
	}
	for _, d := range knightOffsets {
		x := sq.Add(d.dr, d.dc)
		if x.Valid() && at(x).Ident() == PieceFromType(by, PieceTypeKnight) {
			return true
		}
	}
	for _, d := range queenDirs {
		x := sq.Add(d.dr, d.dc)
		if x.Valid() && at(x).Ident() == PieceFromType(by, PieceTypeKing) {
			return true
		}
	}
	for i, d := range queenDirs {
		diagonal := i >= 4
		for x := sq.Add(d.dr, d.dc); x.Valid(); x = x.Add(d.dr, d.dc) {
			q := at(x)
			if q.IsEmpty() {
				continue
			}
			if q.Color() == by {
				switch q.Type() {
				case PieceTypeQueen:
					return true
				case PieceTypeBishop:
					if diagonal {
						return true
					}
				case PieceTypeRook:
					if !diagonal {
						return true
					}
				}
			}
			break
		}
	}
	return false
}
