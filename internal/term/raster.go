package term

import "github.com/Garsondee/Fruit-Drop/internal/game"

// Cell kinds below zero are fixtures; positive values are token ranks.
const (
	cellEmpty    = 0
	cellWall     = -1
	cellDeadline = -2
	cellGuide    = -3
)

// Grid is a rasterised board, rows top to bottom.
type Grid struct {
	Cols, Rows int
	Cells      [][]int
}

// At returns the cell kind at (c, r), or cellEmpty outside the grid.
func (g Grid) At(c, r int) int {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		return cellEmpty
	}
	return g.Cells[r][c]
}

// Rasterize samples the board at each cell centre. The container's full
// width maps to cols and its full height to rows.
func Rasterize(snap game.Snapshot, set game.Settings, cols, rows int) Grid {
	g := Grid{Cols: cols, Rows: rows, Cells: make([][]int, rows)}
	if cols <= 0 || rows <= 0 {
		return g
	}
	cw := set.Width / float64(cols)
	ch := set.Height / float64(rows)
	deadRow := int(set.DeadlineY / ch)
	aimCol := int(snap.AimX / cw)

	for r := 0; r < rows; r++ {
		g.Cells[r] = make([]int, cols)
		y := (float64(r) + 0.5) * ch
		for c := 0; c < cols; c++ {
			x := (float64(c) + 0.5) * cw
			switch {
			case x < set.Wall || x > set.Width-set.Wall:
				g.Cells[r][c] = cellWall
			case r == deadRow:
				g.Cells[r][c] = cellDeadline
			case snap.State == game.StatePlaying && c == aimCol && y > set.SpawnY:
				g.Cells[r][c] = cellGuide
			}
		}
	}

	// Later tokens draw over earlier ones, matching the window renderer.
	for _, t := range snap.Tokens {
		r0 := max(0, int((t.Y-t.Radius)/ch))
		r1 := min(rows-1, int((t.Y+t.Radius)/ch))
		c0 := max(0, int((t.X-t.Radius)/cw))
		c1 := min(cols-1, int((t.X+t.Radius)/cw))
		for r := r0; r <= r1; r++ {
			y := (float64(r) + 0.5) * ch
			for c := c0; c <= c1; c++ {
				x := (float64(c) + 0.5) * cw
				dx, dy := x-t.X, y-t.Y
				if dx*dx+dy*dy <= t.Radius*t.Radius {
					g.Cells[r][c] = int(t.Rank)
				}
			}
		}
	}
	return g
}
