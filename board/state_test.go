package board_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"chess-core/board"
)

func TestCloneIsIndependent(t *testing.T) {
	s := board.NewGame()
	play(t, s, mv("e2e4"), mv("d7d5"))
	startFEN := s.FEN()
	startMoves := s.Moveset()

	c := s.Clone()
	play(t, c, mv("e4d5"), mv("d8d5"))

	if s.FEN() != startFEN {
		t.Fatalf("original changed after clone mutation: got %q want %q", s.FEN(), startFEN)
	}
	if diff := cmp.Diff(startMoves, s.Moveset()); diff != "" {
		t.Fatalf("original moveset changed (-want +got):\n%s", diff)
	}
	if s.Checkmate() || s.Stalemate() || s.Turn() != board.White {
		t.Fatalf("original flags changed")
	}
	if c.FEN() == startFEN {
		t.Fatalf("clone did not advance")
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4r1k1/8/8/8/8/3n4/8/4K2R w - - 0 1",
	}
	for _, fen := range fens {
		s := mustFEN(t, fen)
		s.Refresh()
		first := s.Moveset()
		s.Refresh()
		if diff := cmp.Diff(first, s.Moveset()); diff != "" {
			t.Fatalf("%s: refresh not idempotent (-first +second):\n%s", fen, diff)
		}
	}
}

func TestIllegalMoveLeavesStateUntouched(t *testing.T) {
	s := board.NewGame()
	before := s.FEN()
	e2, _ := board.ParseSquare("e2")
	e5, _ := board.ParseSquare("e5")

	if _, ok := s.FindMove(e2, e5); ok {
		t.Fatalf("e2e5 should not be found")
	}
	if s.MakeMove(board.Move{From: e2, To: e5, CapturedAt: board.NoSquare}) {
		t.Fatalf("MakeMove accepted an illegal move")
	}
	// A forged capture flag on a legal pair is still rejected.
	e4, _ := board.ParseSquare("e4")
	if s.MakeMove(board.Move{From: e2, To: e4, Capture: true, Captured: board.BlackQueen, CapturedAt: e4}) {
		t.Fatalf("MakeMove accepted forged metadata")
	}
	if _, ok := s.FindMove(board.Sq(-1, 9), e4); ok {
		t.Fatalf("off-board origin found a move")
	}
	if s.FEN() != before {
		t.Fatalf("state mutated: got %q want %q", s.FEN(), before)
	}
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	s := board.NewGame()
	play(t, s, mv("f2f3"), mv("e7e5"), mv("g2g4"), mv("d8h4"))

	if !s.Checkmate() {
		t.Fatalf("expected checkmate")
	}
	if s.Stalemate() {
		t.Fatalf("checkmate must not be flagged stalemate")
	}
	if s.NumLegalMoves() != 0 {
		t.Fatalf("mated side has %d legal moves", s.NumLegalMoves())
	}
	if s.Turn() != board.White {
		t.Fatalf("expected white (mated) to move")
	}
	if s.MakeMove(board.Move{}) {
		t.Fatalf("MakeMove accepted a move in a terminal position")
	}
}

func TestKingOnlyStalemate(t *testing.T) {
	// White king a1 boxed in by the queen on b3, not in check.
	s := board.Initialize("7k/8/8/8/8/1q6/8/K7")
	if s.NumLegalMoves() != 0 {
		t.Fatalf("expected no legal moves, got %v", moveStrings(s.LegalMoves()))
	}
	if s.Checkmate() {
		t.Fatalf("stalemate flagged as checkmate")
	}
	if !s.Stalemate() {
		t.Fatalf("expected stalemate")
	}
}

func TestOneKingPerColorInvariant(t *testing.T) {
	s := board.NewGame()
	var walk func(s *board.State, depth int)
	walk = func(s *board.State, depth int) {
		for _, c := range []board.Color{board.White, board.Black} {
			if _, ok := s.KingSquare(c); !ok {
				t.Fatalf("%v king missing in %s", c, s.FEN())
			}
		}
		if depth == 0 {
			return
		}
		for _, m := range s.LegalMoves() {
			child := s.Clone()
			child.MakeMove(m)
			walk(child, depth-1)
		}
	}
	walk(s, 2)
}

// Every legal move must leave the mover's own king unattacked.
func TestLegalMovesNeverExposeOwnKing(t *testing.T) {
	fens := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	var walk func(s *board.State, depth int)
	walk = func(s *board.State, depth int) {
		mover := s.Turn()
		for _, m := range s.LegalMoves() {
			child := s.Clone()
			if !child.MakeMove(m) {
				t.Fatalf("legal move %v rejected in %s", m, s.FEN())
			}
			king, ok := child.KingSquare(mover)
			if !ok {
				t.Fatalf("king vanished after %v", m)
			}
			if child.Attacked(king, mover.Other()) {
				t.Fatalf("%v leaves own king attacked in %s", m, s.FEN())
			}
			if depth > 1 {
				walk(child, depth-1)
			}
		}
	}
	for _, fen := range fens {
		walk(mustFEN(t, fen), 2)
	}
}

// Danger annotations must agree with a direct attack scan of the grid.
func TestDangerMatchesAttackScan(t *testing.T) {
	s := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			sq := board.Sq(r, c)
			for _, by := range []board.Color{board.White, board.Black} {
				if got, want := s.DangerAt(sq).By(by), s.Attacked(sq, by); got != want {
					t.Errorf("%v by %v: danger=%v scan=%v", sq, by, got, want)
				}
			}
		}
	}
}
