package component

// Position is a grid coordinate.
type Position struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev returns the king-move distance between p and o.
func (p Position) Chebyshev(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
