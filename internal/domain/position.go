package domain

// FloorTag identifies one physical building level (e.g. "L1").
type FloorTag string

// Immutable grid cell coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns the orthogonal step distance to other.
// It is the exact travel cost on an open 4-connected grid and an
// admissible, consistent A* heuristic on any grid.
func (p Position) Manhattan(other Position) int {
	return intAbs(p.X-other.X) + intAbs(p.Y-other.Y)
}

func intAbs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
