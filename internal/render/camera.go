package render

// Camera translates between world coordinates and screen coordinates for a
// viewport that may be smaller than the map.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera with its origin at the map's top-left corner.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Follow centers the camera on (cx, cy), clamped so no space beyond a
// mapW×mapH map is shown along an axis where the map is larger than the view.
func (c *Camera) Follow(cx, cy, mapW, mapH int) {
	c.OffsetX = follow(cx, c.ViewWidth, mapW)
	c.OffsetY = follow(cy, c.ViewHeight, mapH)
}

func follow(center, view, size int) int {
	if size <= view {
		return 0
	}
	off := center - view/2
	return max(0, min(off, size-view))
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = wx - c.OffsetX
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}
