package world

import (
	"fmt"

	"yarl/internal/ecs"
)

// InvariantError reports broken entity bookkeeping. It always indicates a
// bug, never a gameplay situation.
type InvariantError struct {
	X, Y   int
	Entity ecs.EntityID
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("world invariant: entity %d at (%d,%d): %s", e.Entity, e.X, e.Y, e.Reason)
}
