package apperror

import "errors"

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidBoard    = errors.New("invalid board")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrGameNotFound    = errors.New("game not found")
	ErrGameConflict    = errors.New("game was changed concurrently")
	ErrMalformedLayout = errors.New("malformed maze layout")
	ErrEmptyFrontier   = errors.New("empty frontier")
	ErrNoSolution      = errors.New("no solution found")
	ErrUnknownStrategy = errors.New("unknown search strategy")
)
