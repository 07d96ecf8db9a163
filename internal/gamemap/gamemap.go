package gamemap

// GameMap is the fixed-size tile grid for one dungeon level, with the
// visible and explored layers kept parallel to the tiles.
type GameMap struct {
	Width, Height int
	Rooms         []Rect

	tiles    []Tile
	visible  []bool
	explored []bool
}

// New creates a GameMap filled with walls, nothing visible or explored.
func New(width, height int) *GameMap {
	if width < 0 || height < 0 {
		panic(&BoundsError{X: width, Y: height, Width: 0, Height: 0})
	}
	n := width * height
	tiles := make([]Tile, n)
	wall := MakeWall()
	for i := range tiles {
		tiles[i] = wall
	}
	return &GameMap{
		Width:    width,
		Height:   height,
		tiles:    tiles,
		visible:  make([]bool, n),
		explored: make([]bool, n),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// index maps (x, y) into the backing slices. Panics with *BoundsError.
func (m *GameMap) index(x, y int) int {
	if !m.InBounds(x, y) {
		panic(&BoundsError{X: x, Y: y, Width: m.Width, Height: m.Height})
	}
	return y*m.Width + x
}

// At returns the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) Tile {
	return m.tiles[m.index(x, y)]
}

// Set replaces the tile at (x, y). Panics if out of bounds.
func (m *GameMap) Set(x, y int, t Tile) {
	m.tiles[m.index(x, y)] = t
}

// Fill sets every cell of r (inclusive) to t, clipped to the map.
func (m *GameMap) Fill(r Rect, t Tile) {
	for y := max(r.Y1, 0); y <= min(r.Y2, m.Height-1); y++ {
		for x := max(r.X1, 0); x <= min(r.X2, m.Width-1); x++ {
			m.tiles[y*m.Width+x] = t
		}
	}
}

// IsWalkable reports whether the tile at (x, y) can be walked over.
// Panics with *BoundsError when (x, y) is out of bounds.
func (m *GameMap) IsWalkable(x, y int) bool {
	return m.tiles[m.index(x, y)].Walkable
}

// IsTransparent reports whether the tile at (x, y) lets light through.
// Panics with *BoundsError when (x, y) is out of bounds.
func (m *GameMap) IsTransparent(x, y int) bool {
	return m.tiles[m.index(x, y)].Transparent
}

// Visible reports whether (x, y) is in view this turn. Out of bounds is false.
func (m *GameMap) Visible(x, y int) bool {
	return m.InBounds(x, y) && m.visible[y*m.Width+x]
}

// Explored reports whether (x, y) has ever been in view. Out of bounds is false.
func (m *GameMap) Explored(x, y int) bool {
	return m.InBounds(x, y) && m.explored[y*m.Width+x]
}

// SetVisible marks (x, y) in view, and therefore explored.
func (m *GameMap) SetVisible(x, y int) {
	i := m.index(x, y)
	m.visible[i] = true
	m.explored[i] = true
}

// Reveal marks (x, y) explored without putting it in view.
func (m *GameMap) Reveal(x, y int) {
	m.explored[m.index(x, y)] = true
}

// ClearVisible drops the whole visible layer. Explored is untouched.
func (m *GameMap) ClearVisible() {
	clear(m.visible)
}

// Appearance resolves what to draw at (x, y): the light graphic when in
// view, the dark graphic when only explored, unknown otherwise.
func (m *GameMap) Appearance(x, y int, unknown Graphic) Graphic {
	i := m.index(x, y)
	switch {
	case m.visible[i]:
		return m.tiles[i].Light
	case m.explored[i]:
		return m.tiles[i].Dark
	default:
		return unknown
	}
}
