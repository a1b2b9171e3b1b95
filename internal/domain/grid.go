package domain

// Grid is one floor's boolean occupancy map. It has value semantics:
// Toggle, Block and Unblock return a new Grid and never alias the
// receiver's cells, so callers can hold the latest version per floor
// while planning code reads older snapshots.
type Grid struct {
	Width  int
	Height int

	blocked []bool
}

func NewGrid(width, height int) Grid {
	return Grid{
		Width:   width,
		Height:  height,
		blocked: make([]bool, width*height),
	}
}

func (g Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Blocked reports whether the cell is occupied. Out-of-bounds cells
// count as blocked so neighbor expansion never needs a separate check.
func (g Grid) Blocked(p Position) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.blocked[p.Y*g.Width+p.X]
}

// Toggle flips one cell's blocked state and returns the new grid
// version. Out-of-bounds positions are refused as a no-op.
func (g Grid) Toggle(p Position) Grid {
	if !g.InBounds(p) {
		return g
	}
	next := g.clone()
	next.blocked[p.Y*g.Width+p.X] = !next.blocked[p.Y*g.Width+p.X]
	return next
}

// Block marks one cell occupied and returns the new grid version.
func (g Grid) Block(p Position) Grid {
	return g.withBlocked(p, true)
}

// Unblock clears one cell and returns the new grid version.
func (g Grid) Unblock(p Position) Grid {
	return g.withBlocked(p, false)
}

func (g Grid) withBlocked(p Position, v bool) Grid {
	if !g.InBounds(p) {
		return g
	}
	next := g.clone()
	next.blocked[p.Y*g.Width+p.X] = v
	return next
}

func (g Grid) clone() Grid {
	next := Grid{Width: g.Width, Height: g.Height, blocked: make([]bool, len(g.blocked))}
	copy(next.blocked, g.blocked)
	return next
}

// BuildGrid rasterizes a floor layout into an occupancy grid.
//
// Blocking order is load-bearing: rooms, then corridor walls, then the
// outer boundary, then bin cells; cluster service points and the lift
// are unblocked last so they always win, even inside a room rectangle.
func BuildGrid(layout FloorLayout) Grid {
	g := NewGrid(layout.Width, layout.Height)

	for _, r := range layout.Rooms {
		g.blockRect(r.X, r.Y, r.W, r.H)
	}

	for _, w := range layout.Walls {
		g.blockLine(w)
	}

	if layout.Boundary {
		g.blockRect(0, 0, g.Width, 1)
		g.blockRect(0, g.Height-1, g.Width, 1)
		g.blockRect(0, 0, 1, g.Height)
		g.blockRect(g.Width-1, 0, 1, g.Height)
	}

	for _, b := range layout.Bins {
		g.set(Position{X: b.X, Y: b.Y}, true)
	}

	for _, c := range layout.Clusters {
		g.set(c.Service, false)
	}
	g.set(layout.Lift, false)

	return g
}

// set mutates in place; only for use while the grid is still private to
// its constructor.
func (g *Grid) set(p Position, v bool) {
	if !g.InBounds(p) {
		return
	}
	g.blocked[p.Y*g.Width+p.X] = v
}

func (g *Grid) blockRect(x, y, w, h int) {
	for xx := x; xx < x+w; xx++ {
		for yy := y; yy < y+h; yy++ {
			g.set(Position{X: xx, Y: yy}, true)
		}
	}
}

func (g *Grid) blockLine(w Wall) {
	if w.Y1 == w.Y2 {
		x0, x1 := minMax(w.X1, w.X2)
		for x := x0; x <= x1; x++ {
			g.set(Position{X: x, Y: w.Y1}, true)
		}
		return
	}
	if w.X1 == w.X2 {
		y0, y1 := minMax(w.Y1, w.Y2)
		for y := y0; y <= y1; y++ {
			g.set(Position{X: w.X1, Y: y}, true)
		}
	}
	// Diagonal segments are not representable on the grid; ignored.
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
