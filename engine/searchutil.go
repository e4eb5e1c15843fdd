package engine

import (
	"fmt"

	"chess-core/board"
)

// PVLine holds the principal variation found below a node.
type PVLine struct {
	Moves []board.Move
}

// Clear empties the line, keeping its storage.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update replaces the line with m followed by the child's line.
func (pv *PVLine) Update(m board.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], m)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns a copy that does not share storage.
func (pv PVLine) Clone() PVLine {
	return PVLine{Moves: append([]board.Move(nil), pv.Moves...)}
}

// GetPVMove returns the first move of the line.
func (pv PVLine) GetPVMove() (board.Move, bool) {
	if len(pv.Moves) == 0 {
		return board.Move{}, false
	}
	return pv.Moves[0], true
}

func getPVLineString(pvLine PVLine) (theMoves string) {
	for _, move := range pvLine.Moves {
		theMoves += " "
		theMoves += move.String()
	}
	return theMoves
}

// getMateOrCPScore formats a score for the info line. Mate scores carry no ply
// distance, so the distance is read from the length of the PV.
func getMateOrCPScore(score int32, pvLen int) string {
	if Abs(score) < MateScore {
		return fmt.Sprintf("cp %d", score)
	}
	mateInN := (pvLen + 1) / 2
	if score < 0 {
		mateInN = -mateInN
	}
	return fmt.Sprintf("mate %d", mateInN)
}
