package action

import "errors"

var (
	// ErrEscape is returned for an escape action; the driver should stop.
	ErrEscape = errors.New("action: escape")
	// ErrInvalidDirection is returned when a directional action carries a
	// vector outside {-1,0,1}² or the null vector.
	ErrInvalidDirection = errors.New("action: invalid direction")
	// ErrForeignEntity is returned when the actor is not registered in the
	// world it is acting in.
	ErrForeignEntity = errors.New("action: entity not in this world")
)
