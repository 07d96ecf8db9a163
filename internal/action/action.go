// Package action resolves one entity's intent per turn against a world.
package action

import "fmt"

// Kind tags the variant held by an Action.
type Kind uint8

const (
	KindEscape Kind = iota
	KindWait
	KindBump
	KindMove
	KindMelee
)

func (k Kind) String() string {
	switch k {
	case KindEscape:
		return "escape"
	case KindWait:
		return "wait"
	case KindBump:
		return "bump"
	case KindMove:
		return "move"
	case KindMelee:
		return "melee"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Action is an intent for one turn. DX and DY are only meaningful for the
// directional kinds (bump, move, melee).
type Action struct {
	Kind   Kind
	DX, DY int
}

// EscapeAction ends the game loop.
func EscapeAction() Action { return Action{Kind: KindEscape} }

// WaitAction spends the turn doing nothing.
func WaitAction() Action { return Action{Kind: KindWait} }

// BumpAction moves toward (dx, dy), or attacks whatever blocks that cell.
func BumpAction(dx, dy int) Action { return Action{Kind: KindBump, DX: dx, DY: dy} }

// MoveAction moves by (dx, dy) without attacking.
func MoveAction(dx, dy int) Action { return Action{Kind: KindMove, DX: dx, DY: dy} }

// MeleeAction attacks the blocking entity at (dx, dy) without moving.
func MeleeAction(dx, dy int) Action { return Action{Kind: KindMelee, DX: dx, DY: dy} }

// Directional reports whether a carries a direction.
func (a Action) Directional() bool {
	return a.Kind == KindBump || a.Kind == KindMove || a.Kind == KindMelee
}

func (a Action) String() string {
	if a.Directional() {
		return fmt.Sprintf("%s(%d,%d)", a.Kind, a.DX, a.DY)
	}
	return a.Kind.String()
}

// Outcome describes what resolving an action did. The blocked outcomes are
// normal no-ops, not failures.
type Outcome uint8

const (
	OutcomeNone            Outcome = iota
	OutcomeMoved                   // position updated
	OutcomeAttacked                // combat applied to the target
	OutcomeKicked                  // target could not fight back; flavor text only
	OutcomeWaited                  // turn passed
	OutcomeOutOfBounds             // destination off the map
	OutcomeBlockedByTile           // destination not walkable
	OutcomeBlockedByEntity         // destination occupied by a blocker
	OutcomeNoTarget                // melee into an empty cell
	OutcomeNoActor                 // the acting entity is dead
)

var outcomeNames = [...]string{
	OutcomeNone:            "none",
	OutcomeMoved:           "moved",
	OutcomeAttacked:        "attacked",
	OutcomeKicked:          "kicked",
	OutcomeWaited:          "waited",
	OutcomeOutOfBounds:     "out-of-bounds",
	OutcomeBlockedByTile:   "blocked-by-tile",
	OutcomeBlockedByEntity: "blocked-by-entity",
	OutcomeNoTarget:        "no-target",
	OutcomeNoActor:         "no-actor",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Blocked reports whether o is one of the silent movement no-ops.
func (o Outcome) Blocked() bool {
	return o == OutcomeOutOfBounds || o == OutcomeBlockedByTile || o == OutcomeBlockedByEntity
}
