package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell")
	ErrInvalidSnapshot = errors.New("invalid match snapshot")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrQuit            = errors.New("quit requested")
)
