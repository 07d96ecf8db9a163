// Package ai decides monster intents. It never mutates the world: every
// decision is returned as an action for the resolver.
package ai

import (
	"yarl/internal/action"
	"yarl/internal/component"
	"yarl/internal/world"
)

// Decide returns the intent of actor toward target for this turn.
// A monster acts only while it stands on a cell the target can see;
// otherwise it waits.
func Decide(s *world.State, actor, target *world.Entity) action.Action {
	if actor.AI == nil || target == nil || !target.IsAlive() {
		return action.WaitAction()
	}
	if !s.Map.Visible(actor.X, actor.Y) {
		return action.WaitAction()
	}

	dx, dy := target.X-actor.X, target.Y-actor.Y
	if actor.Chebyshev(target.Position) == 1 {
		return action.MeleeAction(dx, dy)
	}
	if actor.AI.Behavior == component.BehaviorStationary {
		return action.WaitAction()
	}
	return chaseStep(s, actor, sign(dx), sign(dy))
}

// chaseStep prefers the diagonal step, then each single axis, picking the
// first one whose destination is open.
func chaseStep(s *world.State, actor *world.Entity, sx, sy int) action.Action {
	candidates := [][2]int{{sx, sy}, {sx, 0}, {0, sy}}
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		if open(s, actor.X+c[0], actor.Y+c[1]) {
			return action.BumpAction(c[0], c[1])
		}
	}
	return action.WaitAction()
}

func open(s *world.State, x, y int) bool {
	return s.Map.InBounds(x, y) && s.Map.IsWalkable(x, y) && s.BlockingEntityAt(x, y) == nil
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
