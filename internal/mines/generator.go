package mines

import "fmt"

const (
	MinSide = 2
	MaxSide = 30
)

// Rand is the randomness a board is generated from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type Params struct {
	Width, Height, MineCount int
}

func (p Params) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p Params) Cells() int {
	return p.Width * p.Height
}

func (p Params) Validate() error {
	if p.Width < MinSide || p.Width > MaxSide {
		return fmt.Errorf(
			"%w: width must be between %d and %d, got %d",
			ErrInvalidDimensions, MinSide, MaxSide, p.Width,
		)
	}
	if p.Height < MinSide || p.Height > MaxSide {
		return fmt.Errorf(
			"%w: height must be between %d and %d, got %d",
			ErrInvalidDimensions, MinSide, MaxSide, p.Height,
		)
	}
	if p.MineCount < 0 || p.MineCount >= p.Cells() {
		return fmt.Errorf(
			"%w: mine count must be between 0 and %d, got %d",
			ErrInvalidMineCount, p.Cells()-1, p.MineCount,
		)
	}
	return nil
}

func (p Params) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

// Generate returns an all-blank grid and a row-major mine mask with exactly
// p.MineCount mines. p must already be valid.
func Generate(p Params, r Rand) (Grid, []bool) {
	width, height, mineCount := p.Unpack()

	mines := make([]bool, width*height)
	for placed := 0; placed < mineCount; {
		row, col := r.IntN(height), r.IntN(width)
		if i := row*width + col; !mines[i] {
			mines[i] = true
			placed++
		}
	}

	return NewGrid(width, height), mines
}
