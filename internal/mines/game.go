package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"
)

type State int8

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

type Game struct {
	ID string
	Params
	Mines         []bool /* real mine points, row-major */
	Grid          Grid   /* player knowledge */
	Revealed      []bool
	RevealedCount int
	State         State
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewGame(id string, params Params, r Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	grid, mines := Generate(params, r)
	game := &Game{
		ID:       id,
		Params:   params,
		Mines:    mines,
		Grid:     grid,
		Revealed: make([]bool, params.Cells()),
		State:    InProgress,
	}
	return game, nil
}

func DecodeGame(buf []byte) (*Game, error) {
	var game Game
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (g Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Game) Completed() bool {
	return g.State != InProgress
}

// Reveal applies a single move. A rejected move returns an error and leaves
// the game untouched.
func (g *Game) Reveal(row, col int) error {
	if !g.PointInBounds(row, col) {
		return fmt.Errorf(
			"%w: (%d, %d) is outside of a %dx%d board",
			ErrInvalidCell, row, col, g.Width, g.Height,
		)
	}
	if g.Completed() {
		return fmt.Errorf("%w: game %s is %s", ErrGameCompleted, g.ID, g.State)
	}
	i := row*g.Width + col
	if g.Revealed[i] {
		return fmt.Errorf("%w: (%d, %d)", ErrCellRevealed, row, col)
	}

	if g.Mines[i] {
		g.detonate()
		g.State = Lost
		return nil
	}

	if n := g.neighborMines(row, col); n == 0 {
		g.cascade(row, col)
	} else {
		g.revealOne(row, col, n)
	}

	if g.won() {
		g.markMines()
		g.State = Won
	}
	return nil
}
