package engine

import "chess-core/board"

type move struct {
	move  board.Move
	score uint16
	child *board.State // position after move, built while scoring
}

type moveList struct {
	moves []move
}

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort captures
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 0}, // victim Pawn
	{0, 24, 23, 22, 21, 20, 0}, // victim Knight
	{0, 34, 33, 32, 31, 30, 0}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 0}, // victim Rook
	{0, 54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King
}

// Ordering offsets. A check bonus is added on top of the base score.
var promotionOffset uint16 = 20000
var captureOffset uint16 = 15000
var checkOffset uint16 = 3000

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves *moveList) {
	bestIndex := currIndex
	bestScore := moves.moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves.moves); index++ {
		if moves.moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves.moves[index].score
		}
	}

	moves.moves[currIndex], moves.moves[bestIndex] = moves.moves[bestIndex], moves.moves[currIndex]
}

// scoreMovesList plays every legal move on a clone and scores it. The clone is
// kept so the search can descend into it without replaying the move.
func scoreMovesList(s *board.State) (movesList moveList) {
	legal := s.LegalMoves()
	movesList.moves = make([]move, 0, len(legal))
	for _, m := range legal {
		child := s.Clone()
		if !child.MakeMove(m) {
			continue
		}

		var moveEval uint16
		if m.Promotion != board.PieceTypeNone {
			moveEval = promotionOffset + uint16(PieceValue[m.Promotion])
		} else if m.Capture {
			attacker := s.PieceAt(m.From).Type()
			moveEval = captureOffset + mvvLva[m.Captured.Type()][attacker]
		}
		if child.InCheck() {
			moveEval += checkOffset
		}

		movesList.moves = append(movesList.moves, move{move: m, score: moveEval, child: child})
	}
	return movesList
}

// sortMovesList fully orders the list, best first.
func sortMovesList(moves *moveList) {
	for i := range moves.moves {
		orderNextMove(i, moves)
	}
}
