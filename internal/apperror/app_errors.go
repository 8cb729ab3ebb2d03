package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrNoLegalMove  = errors.New("no legal moves left")
	ErrUnknownMode  = errors.New("unknown game mode")
	ErrUnknownMark  = errors.New("unknown player mark")
)
