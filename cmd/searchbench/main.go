package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"chess-core/board"
	"chess-core/engine"
)

var defaultPositions = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run per position")
	fenFlag := flag.String("fen", "", "FEN to search (empty = built-in set)")
	layoutFlag := flag.String("layout", "", "piece layout to search, white to move (overrides -fen)")
	tieFlag := flag.String("tiebreak", engine.TieBreakMoveOrder.String(), "root tie-break: moveorder or firstdone")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	tieBreak, ok := engine.ParseTieBreak(*tieFlag)
	if !ok {
		log.Fatalf("unknown tiebreak %q", *tieFlag)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	var positions []*board.State
	switch {
	case *layoutFlag != "":
		positions = append(positions, board.Initialize(*layoutFlag))
	case *fenFlag != "":
		s, err := board.ParseFEN(*fenFlag)
		if err != nil {
			log.Fatalf("could not parse fen: %v", err)
		}
		positions = append(positions, s)
	default:
		for _, fen := range defaultPositions {
			s, err := board.ParseFEN(fen)
			if err != nil {
				log.Fatalf("could not parse built-in fen %q: %v", fen, err)
			}
			positions = append(positions, s)
		}
	}

	opts := engine.Options{Depth: *depthFlag, TieBreak: tieBreak, Info: os.Stdout}
	fmt.Printf("searchbench: positions=%d depth=%d repeat=%d tiebreak=%v\n", len(positions), opts.Depth, *repeatFlag, tieBreak)

	var totalNodes uint64
	startAll := time.Now()
	for _, s := range positions {
		fmt.Println(strings.Repeat("-", 40))
		fmt.Println(s.FEN())
		for i := 0; i < *repeatFlag; i++ {
			res, ok := engine.NewSearcher(opts).Search(s, s.Turn())
			if !ok {
				fmt.Printf("iteration %d: no legal moves\n", i+1)
				continue
			}
			totalNodes += res.Nodes
			fmt.Printf("iteration %d: bestmove %v  time=%v\n", i+1, res.Move, res.Elapsed)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d\n", totalElapsed, totalNodes)

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
