package mines

func (g *Game) neighborMines(row, col int) int {
	return CountNeighborMines(g.Mines, g.Width, g.Height, row, col)
}

func (g *Game) markRevealed(i int) {
	if !g.Revealed[i] {
		g.Revealed[i] = true
		g.RevealedCount++
	}
}

// detonate opens the whole board. Mines get the Detonated marker, every other
// cell gets its neighbour count.
func (g *Game) detonate() {
	for row := range g.Height {
		for col := range g.Width {
			i := row*g.Width + col
			if g.Mines[i] {
				g.Grid[i] = Detonated
			} else {
				g.Grid[i] = Cell(g.neighborMines(row, col))
			}
			g.markRevealed(i)
		}
	}
}

// revealOne opens a single safe cell whose count is already known.
func (g *Game) revealOne(row, col, count int) {
	i := row*g.Width + col
	g.Grid[i] = Cell(count)
	g.markRevealed(i)
}

// cascade opens (row, col) and everything orthogonally reachable from it
// through zero-count cells. Numbered cells on the border are opened but not
// expanded.
func (g *Game) cascade(row, col int) {
	visited := make([]bool, g.Cells())
	todo := []int{row*g.Width + col}

	for len(todo) > 0 {
		i := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if visited[i] {
			continue
		}
		visited[i] = true

		y, x := i/g.Width, i%g.Width
		n := g.neighborMines(y, x)
		g.revealOne(y, x, n)
		if n != 0 {
			continue
		}

		for _, d := range orthogonal {
			yy, xx := y+d[0], x+d[1]
			if g.PointInBounds(yy, xx) && !visited[yy*g.Width+xx] {
				todo = append(todo, yy*g.Width+xx)
			}
		}
	}
}

// won reports whether only mines are left covered.
func (g *Game) won() bool {
	return g.RevealedCount+g.MineCount == g.Cells()
}

// markMines shows every mine with the win marker.
func (g *Game) markMines() {
	for i, mine := range g.Mines {
		if mine {
			g.Grid[i] = Mine
		}
	}
}
