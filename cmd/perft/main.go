package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/board"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	layout := flag.String("layout", "", "Piece layout, white to move (overrides -fen)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check the node count against goosemg and dragontoothmg")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	var state *board.State
	if *layout != "" {
		state = board.Initialize(*layout)
	} else {
		s, err := board.ParseFEN(*fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
			os.Exit(2)
		}
		state = s
	}

	// Optional divide output
	if *divide {
		div := board.PerftDivide(state, *depth)
		moves := maps.Keys(div)
		slices.Sort(moves)
		var sum uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *verify {
		if !verifyPerft(state, *depth) {
			os.Exit(1)
		}
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(state, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// verifyPerft compares the node count with both reference generators and
// prints one line per generator.
func verifyPerft(state *board.State, depth int) bool {
	fen := state.FEN()
	ours := board.Perft(state, depth)
	fmt.Printf("board        \t%d\n", ours)

	ok := true
	gb, err := gm.ParseFEN(fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goosemg ParseFEN error: %v\n", err)
		return false
	}
	if n := gm.Perft(gb, depth); n != ours {
		fmt.Printf("goosemg      \t%d\tMISMATCH\n", n)
		ok = false
	} else {
		fmt.Printf("goosemg      \t%d\n", n)
	}

	db := dragontoothmg.ParseFen(fen)
	if n := dragonPerft(&db, depth); n != ours {
		fmt.Printf("dragontoothmg\t%d\tMISMATCH\n", n)
		ok = false
	} else {
		fmt.Printf("dragontoothmg\t%d\n", n)
	}
	return ok
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		unapply()
	}
	return nodes
}
