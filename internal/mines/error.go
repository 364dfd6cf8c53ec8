package mines

import "errors"

var (
	ErrInvalidDimensions = errors.New("invalid board dimensions")
	ErrInvalidMineCount  = errors.New("invalid mine count")
	ErrInvalidCell       = errors.New("invalid cell")
	ErrGameNotFound      = errors.New("game not found")
	ErrGameCompleted     = errors.New("game is already completed")
	ErrCellRevealed      = errors.New("cell is already revealed")
)
