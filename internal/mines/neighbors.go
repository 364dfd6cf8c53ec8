package mines

// CountNeighborMines returns how many of the up to eight cells around
// (row, col) are mines. The cell itself is not counted.
func CountNeighborMines(mines []bool, width, height, row, col int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		if row+dy < 0 || row+dy >= height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if col+dx < 0 || col+dx >= width {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			if mines[(row+dy)*width+(col+dx)] {
				n++
			}
		}
	}
	return n
}

// orthogonal neighbour offsets used by the cascade
var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
