package t2048

import "errors"

var (
	// ErrInvalidBoardSize is returned when a board size outside [2, 9] is requested.
	ErrInvalidBoardSize = errors.New("t2048: board size out of range")
	// ErrGameStarted is returned when the board size or undo setting is changed after
	// the first move.
	ErrGameStarted = errors.New("t2048: game already started")
	// ErrGameOver is returned by Move once no move is left.
	ErrGameOver = errors.New("t2048: game over")
	// ErrPersist wraps snapshot save and load failures. The in-memory game is still
	// valid when it is returned; callers should treat it as a warning.
	ErrPersist = errors.New("t2048: persistence failed")
	// ErrCorruptSnapshot is returned when a stored snapshot cannot be restored.
	ErrCorruptSnapshot = errors.New("t2048: corrupt snapshot")
)
