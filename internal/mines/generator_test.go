package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed sequence of values, one per IntN call.
type scripted struct {
	values []int
	pos    int
}

func script(points ...[2]int) *scripted {
	s := &scripted{}
	for _, p := range points {
		s.values = append(s.values, p[0], p[1])
	}
	return s
}

func (s *scripted) IntN(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func countMines(mines []bool) (count int) {
	for _, m := range mines {
		if m {
			count++
		}
	}
	return
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{name: "2x2(0)", params: Params{Width: 2, Height: 2, MineCount: 0}},
		{name: "2x2(3)", params: Params{Width: 2, Height: 2, MineCount: 3}},
		{name: "9x9(10)", params: Params{Width: 9, Height: 9, MineCount: 10}},
		{name: "16x16(99)", params: Params{Width: 16, Height: 16, MineCount: 99}},
		{name: "30x16(170)", params: Params{Width: 30, Height: 16, MineCount: 170}},
		{name: "30x30(899)", params: Params{Width: 30, Height: 30, MineCount: 899}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 20 {
				grid, mines := Generate(test.params, r)
				require.Len(t, grid, test.params.Cells())
				require.Len(t, mines, test.params.Cells())
				assert.Equal(t, test.params.MineCount, countMines(mines))
				for i, c := range grid {
					assert.Equal(t, Blank, c, "cell %d", i)
				}
			}
		})
	}
}

func TestGenerateSkipsDuplicates(t *testing.T) {
	r := script([2]int{1, 1}, [2]int{1, 1}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 0})
	_, mines := Generate(Params{Width: 3, Height: 3, MineCount: 3}, r)

	want := []bool{
		false, true, false,
		false, true, false,
		true, false, false,
	}
	assert.Equal(t, want, mines)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		params Params
		err    error
	}{
		{Params{Width: 2, Height: 2, MineCount: 0}, nil},
		{Params{Width: 30, Height: 30, MineCount: 899}, nil},
		{Params{Width: 1, Height: 10, MineCount: 1}, ErrInvalidDimensions},
		{Params{Width: 31, Height: 10, MineCount: 1}, ErrInvalidDimensions},
		{Params{Width: 10, Height: 1, MineCount: 1}, ErrInvalidDimensions},
		{Params{Width: 10, Height: 31, MineCount: 1}, ErrInvalidDimensions},
		{Params{Width: 2, Height: 2, MineCount: 4}, ErrInvalidMineCount},
		{Params{Width: 2, Height: 2, MineCount: -1}, ErrInvalidMineCount},
	}
	for _, test := range tests {
		err := test.params.Validate()
		if test.err == nil {
			assert.NoError(t, err, "%+v", test.params)
		} else {
			assert.ErrorIs(t, err, test.err, "%+v", test.params)
		}
	}
}

func TestCountNeighborMines(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		p := Params{Width: 2 + r.IntN(29), Height: 2 + r.IntN(29)}
		p.MineCount = r.IntN(p.Cells())
		_, mines := Generate(p, r)
		for row := range p.Height {
			for col := range p.Width {
				n := CountNeighborMines(mines, p.Width, p.Height, row, col)
				want := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if (dx != 0 || dy != 0) && p.PointInBounds(row+dy, col+dx) &&
							mines[(row+dy)*p.Width+col+dx] {
							want++
						}
					}
				}
				require.Equal(t, want, n)
				require.LessOrEqual(t, n, 8)
			}
		}
	}
}

func TestCountNeighborMinesFull(t *testing.T) {
	mines := make([]bool, 9)
	for i := range mines {
		mines[i] = true
	}
	assert.Equal(t, 8, CountNeighborMines(mines, 3, 3, 1, 1))
	assert.Equal(t, 3, CountNeighborMines(mines, 3, 3, 0, 0))
	assert.Equal(t, 5, CountNeighborMines(mines, 3, 3, 0, 1))
}
