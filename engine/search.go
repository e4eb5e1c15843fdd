package engine

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"chess-core/board"
)

const (
	// DefaultDepth is the search depth used when none is configured.
	DefaultDepth = 2
	// MaxDepth caps configured depths.
	MaxDepth = 32
)

// TieBreak selects how root moves with equal scores are resolved.
type TieBreak int

const (
	// TieBreakMoveOrder keeps the earliest move of the ordered root list.
	TieBreakMoveOrder TieBreak = iota
	// TieBreakFirstDone keeps whichever root task finished first.
	TieBreakFirstDone
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakFirstDone:
		return "firstdone"
	default:
		return "moveorder"
	}
}

// ParseTieBreak maps an option value onto a TieBreak.
func ParseTieBreak(v string) (TieBreak, bool) {
	switch v {
	case "moveorder":
		return TieBreakMoveOrder, true
	case "firstdone":
		return TieBreakFirstDone, true
	}
	return TieBreakMoveOrder, false
}

// Options configure a Searcher.
type Options struct {
	Depth    int
	TieBreak TieBreak
	// Info receives one "info ..." line per finished search. Nil disables it.
	Info io.Writer
}

// DefaultOptions returns the options GetBestMove uses.
func DefaultOptions() Options {
	return Options{Depth: DefaultDepth, TieBreak: TieBreakMoveOrder}
}

// Result is the outcome of a search.
type Result struct {
	Move    board.Move
	Score   int32
	PV      []board.Move
	Nodes   uint64
	Elapsed time.Duration
}

// Searcher runs fixed-depth searches. A Searcher may be reused but not shared
// between concurrent Search calls.
type Searcher struct {
	Options Options

	nodesChecked atomic.Uint64
}

// NewSearcher returns a Searcher with the given options.
func NewSearcher(opts Options) *Searcher {
	return &Searcher{Options: opts}
}

// GetBestMove searches s to depth and returns the best move for color.
// It returns false when s is checkmate or stalemate, or when color is not
// the side to move.
func GetBestMove(s *board.State, color board.Color, depth int) (board.Move, bool) {
	opts := DefaultOptions()
	opts.Depth = depth
	res, ok := NewSearcher(opts).Search(s, color)
	return res.Move, ok
}

// rootBest accumulates the best root result across tasks.
type rootBest struct {
	mu    sync.Mutex
	found bool
	score int32
	index int
	pv    PVLine
}

func (rb *rootBest) offer(tb TieBreak, index int, score int32, pv PVLine) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	better := !rb.found || score > rb.score
	if tb == TieBreakMoveOrder && rb.found && score == rb.score && index < rb.index {
		better = true
	}
	if !better {
		return
	}
	rb.found = true
	rb.score = score
	rb.index = index
	rb.pv = pv
}

// Search evaluates every legal root move concurrently, one goroutine per move,
// and returns the best one for color. s is never modified.
func (sr *Searcher) Search(s *board.State, color board.Color) (Result, bool) {
	if color != s.Turn() || s.Terminal() || s.NumLegalMoves() == 0 {
		return Result{}, false
	}

	depth := Clamp(sr.Options.Depth, 1, MaxDepth)
	sr.nodesChecked.Store(0)
	start := time.Now()

	rootMoves := scoreMovesList(s)
	sortMovesList(&rootMoves)

	var best rootBest
	var wg sync.WaitGroup
	for i, rm := range rootMoves.moves {
		wg.Add(1)
		go func(index int, rm move) {
			defer wg.Done()
			var childPV PVLine
			score := sr.alphabeta(rm.child, -MaxScore, MaxScore, depth-1, color, &childPV)
			var pv PVLine
			pv.Update(rm.move, childPV)
			best.offer(sr.Options.TieBreak, index, score, pv)
		}(i, rm)
	}
	wg.Wait()

	pv := best.pv.Clone()
	bestMove, _ := pv.GetPVMove()
	res := Result{
		Move:    bestMove,
		Score:   best.score,
		PV:      pv.Moves,
		Nodes:   sr.nodesChecked.Load(),
		Elapsed: time.Since(start),
	}
	sr.report(depth, res)
	return res, best.found
}

// alphabeta is a fixed-depth minimax with alpha-beta pruning. The side to
// move maximizes when it is color and minimizes otherwise.
func (sr *Searcher) alphabeta(s *board.State, alpha, beta int32, depth int, color board.Color, pvLine *PVLine) int32 {
	sr.nodesChecked.Add(1)

	if depth <= 0 || s.Terminal() {
		pvLine.Clear()
		return Evaluation(s, color)
	}

	maximizing := s.Turn() == color
	moveList := scoreMovesList(s)

	var childPVLine PVLine
	bestScore := MaxScore
	if maximizing {
		bestScore = -MaxScore
	}

	for index := range moveList.moves {
		orderNextMove(index, &moveList)
		mv := moveList.moves[index]

		childPVLine.Clear()
		score := sr.alphabeta(mv.child, alpha, beta, depth-1, color, &childPVLine)

		if maximizing {
			if score > bestScore {
				bestScore = score
				pvLine.Update(mv.move, childPVLine)
			}
			alpha = Max(alpha, score)
		} else {
			if score < bestScore {
				bestScore = score
				pvLine.Update(mv.move, childPVLine)
			}
			beta = Min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return bestScore
}

func (sr *Searcher) report(depth int, res Result) {
	if sr.Options.Info == nil {
		return
	}
	timeSpent := res.Elapsed.Milliseconds()
	if timeSpent == 0 {
		timeSpent = 1
	}
	nps := res.Nodes * 1000 / uint64(timeSpent)
	fmt.Fprintln(sr.Options.Info,
		"info depth", depth,
		"score", getMateOrCPScore(res.Score, len(res.PV)),
		"nodes", res.Nodes,
		"time", timeSpent,
		"nps", nps,
		"pv"+getPVLineString(PVLine{Moves: res.PV}),
	)
}
