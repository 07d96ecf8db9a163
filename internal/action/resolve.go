package action

import (
	"fmt"

	"yarl/internal/combat"
	"yarl/internal/message"
	"yarl/internal/world"

	"github.com/gdamore/tcell/v2"
)

// Combat is the collaborator that applies melee damage.
type Combat interface {
	Attack(attacker, target *world.Entity) combat.AttackResult
}

// Messages receives flavor text.
type Messages interface {
	Add(text string, color tcell.Color)
}

// Resolver dispatches actions. It holds no per-turn state; the same
// Resolver serves every entity.
type Resolver struct {
	Combat Combat
	Log    Messages
}

// Resolve performs a for actor inside s and reports what happened.
// Blocked movement is reported through the Outcome, never as an error.
func (r *Resolver) Resolve(s *world.State, actor *world.Entity, a Action) (Outcome, error) {
	if a.Kind == KindEscape {
		return OutcomeNone, ErrEscape
	}
	if !s.Contains(actor) {
		return OutcomeNone, fmt.Errorf("%w: %s", ErrForeignEntity, actor)
	}
	if actor.IsActor() && !actor.IsAlive() {
		return OutcomeNoActor, nil
	}
	if a.Directional() && !validDirection(a.DX, a.DY) {
		return OutcomeNone, fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, a.DX, a.DY)
	}

	switch a.Kind {
	case KindWait:
		return OutcomeWaited, nil
	case KindBump:
		if s.BlockingEntityAt(actor.X+a.DX, actor.Y+a.DY) != nil {
			return r.melee(s, actor, a.DX, a.DY), nil
		}
		return r.move(s, actor, a.DX, a.DY), nil
	case KindMove:
		return r.move(s, actor, a.DX, a.DY), nil
	case KindMelee:
		return r.melee(s, actor, a.DX, a.DY), nil
	}
	return OutcomeNone, fmt.Errorf("action: unknown kind %v", a.Kind)
}

// move checks bounds, then terrain, then occupancy. The order matters: the
// tile lookup must never see an out-of-bounds coordinate.
func (r *Resolver) move(s *world.State, actor *world.Entity, dx, dy int) Outcome {
	x, y := actor.X+dx, actor.Y+dy
	if !s.Map.InBounds(x, y) {
		return OutcomeOutOfBounds
	}
	if !s.Map.IsWalkable(x, y) {
		return OutcomeBlockedByTile
	}
	if s.BlockingEntityAt(x, y) != nil {
		return OutcomeBlockedByEntity
	}
	actor.Move(dx, dy)
	return OutcomeMoved
}

// melee never moves the actor.
func (r *Resolver) melee(s *world.State, actor *world.Entity, dx, dy int) Outcome {
	target := s.BlockingEntityAt(actor.X+dx, actor.Y+dy)
	if target == nil {
		return OutcomeNoTarget
	}
	if r.Combat == nil || !actor.IsActor() || !target.IsAlive() {
		if r.Log != nil {
			r.Log.Add(fmt.Sprintf("You kick the %s, much to its annoyance!", target.Name), message.ColorWhite)
		}
		return OutcomeKicked
	}
	r.Combat.Attack(actor, target)
	return OutcomeAttacked
}

func validDirection(dx, dy int) bool {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	return dx != 0 || dy != 0
}
