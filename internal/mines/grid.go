package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Cell int8

const (
	Blank     Cell = -1 // not revealed yet
	Detonated Cell = -2 // mine shown after a loss
	Mine      Cell = -3 // mine shown after a win
	// 0-8 for a revealed cell with the given number of mined neighbours
)

func (c Cell) String() string {
	switch c {
	case Blank:
		return " "
	case Detonated:
		return "X"
	case Mine:
		return "M"
	case 0, 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}

// Revealed numbers are encoded as JSON numbers, markers as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	if 0 <= c && c <= 8 {
		return []byte(strconv.Itoa(int(c))), nil
	}
	switch c {
	case Blank, Detonated, Mine:
		return json.Marshal(c.String())
	}
	return nil, fmt.Errorf("invalid cell value %d", int8(c))
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		if value < 0 || value > 8 || value != float64(int(value)) {
			return fmt.Errorf("invalid cell number %v", value)
		}
		*c = Cell(value)
	case string:
		switch value {
		case " ":
			*c = Blank
		case "X":
			*c = Detonated
		case "M":
			*c = Mine
		default:
			return fmt.Errorf("invalid cell marker %q", value)
		}
	default:
		return fmt.Errorf("invalid cell %s", data)
	}
	return nil
}

// Grid stores cells row-major: cell (row, col) is at row*width+col.
type Grid []Cell

func NewGrid(width, height int) Grid {
	g := make(Grid, width*height)
	for i := range g {
		g[i] = Blank
	}
	return g
}

// Rows splits the grid into height rows of width cells each.
func (g Grid) Rows(width int) [][]Cell {
	if width <= 0 {
		return nil
	}
	rows := make([][]Cell, 0, len(g)/width)
	for i := 0; i+width <= len(g); i += width {
		row := make([]Cell, width)
		copy(row, g[i:i+width])
		rows = append(rows, row)
	}
	return rows
}

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for _, row := range g.Rows(width) {
		for _, c := range row {
			fmt.Fprint(&b, c.String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
