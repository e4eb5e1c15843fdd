package board_test

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"
	"golang.org/x/exp/slices"

	"chess-core/board"
)

type perftCase struct {
	name  string
	fen   string
	nodes []uint64 // nodes[i] is the count at depth i+1
}

var perftCases = []perftCase{
	{"initial", board.FENStartPos, []uint64{20, 400, 8902, 197281}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039, 97862}},
	{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238}},
	{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467}},
	{"talkchess", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379}},
	{"middlegame", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []uint64{46, 2079, 89890}},
}

func TestPerftKnownPositions(t *testing.T) {
	for _, tc := range perftCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := mustFEN(t, tc.fen)
			for i, want := range tc.nodes {
				depth := i + 1
				if testing.Short() && want > 10000 {
					continue
				}
				if got := board.Perft(s, depth); got != want {
					t.Fatalf("depth %d: got %d want %d", depth, got, want)
				}
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	s := mustFEN(t, perftCases[1].fen)
	div := board.PerftDivide(s, 2)
	if len(div) != 48 {
		t.Fatalf("divide has %d root moves, want 48", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2039 {
		t.Fatalf("divide total %d want 2039", sum)
	}
	if len(board.PerftDivide(s, 0)) != 0 {
		t.Fatalf("depth 0 divide should be empty")
	}
}

// Cross-check perft totals against the goosemg bitboard generator.
func TestPerftMatchesGoosemg(t *testing.T) {
	for _, tc := range perftCases {
		ours := mustFEN(t, tc.fen)
		ref, err := gm.ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("%s: goosemg ParseFEN: %v", tc.name, err)
		}
		for depth := 1; depth <= 2; depth++ {
			if got, want := board.Perft(ours, depth), gm.Perft(ref, depth); got != want {
				t.Errorf("%s depth %d: got %d goosemg %d", tc.name, depth, got, want)
			}
		}
	}
}

func dragonSquare(sq uint8) string {
	return string([]byte{'a' + sq%8, '1' + sq/8})
}

func dragonMoveString(m dragontoothmg.Move) string {
	s := dragonSquare(m.From()) + dragonSquare(m.To())
	switch m.Promote() {
	case dragontoothmg.Queen:
		s += "q"
	case dragontoothmg.Rook:
		s += "r"
	case dragontoothmg.Bishop:
		s += "b"
	case dragontoothmg.Knight:
		s += "n"
	}
	return s
}

func dragonLegal(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, dragonMoveString(m))
	}
	slices.Sort(out)
	return out
}

// Walk two plies from each position and compare the full legal move set at
// every node with dragontoothmg.
func TestLegalMovesMatchDragontooth(t *testing.T) {
	var walk func(s *board.State, depth int)
	walk = func(s *board.State, depth int) {
		fen := s.FEN()
		if diff := cmp.Diff(dragonLegal(fen), moveStrings(s.LegalMoves())); diff != "" {
			t.Fatalf("%s: legal set mismatch (-dragontooth +ours):\n%s", fen, diff)
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
	for _, tc := range perftCases {
		walk(mustFEN(t, tc.fen), 1)
	}
}

func notnilLegal(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("notnil FEN %q: %v", fen, err)
	}
	moves := chess.NewGame(opt).ValidMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// Same walk against github.com/notnil/chess as a third opinion.
func TestLegalMovesMatchNotnilChess(t *testing.T) {
	for _, tc := range perftCases {
		s := mustFEN(t, tc.fen)
		for _, m := range append([]board.Move{{}}, s.LegalMoves()...) {
			node := s
			if m != (board.Move{}) {
				node = s.Clone()
				node.MakeMove(m)
			}
			fen := node.FEN()
			if diff := cmp.Diff(notnilLegal(t, fen), moveStrings(node.LegalMoves())); diff != "" {
				t.Fatalf("%s: legal set mismatch (-notnil +ours):\n%s", fen, diff)
			}
		}
	}
}
