package board

import "errors"

// Sentinel errors for board input. Use errors.Is to inspect wrapped values.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move absent from the current legal set.
	ErrIllegalMove = errors.New("illegal move")
)
