package gamemap

import "fmt"

// BoundsError reports an attempt to index the grid outside its dimensions.
// It is raised as a panic value: callers are expected to check InBounds first.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("gamemap: (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}
