package apperror

import "errors"

// Error kinds reported by the game controller. Both are recoverable: the game state is left untouched.
var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrInvalidSymbol = errors.New("invalid symbol")
)

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrWrongPhase     = errors.New("operation is not allowed in the current phase")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrCellOutOfRange = errors.New("cell is out of range")
	ErrUnknownSymbol  = errors.New("unknown symbol")
	ErrCorruptedState = errors.New("corrupted game state")
)
