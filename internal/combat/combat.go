// Package combat applies melee damage and death to actors.
package combat

import (
	"fmt"

	"yarl/internal/component"
	"yarl/internal/message"
	"yarl/internal/world"
	"yarl/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// CorpseColor is the glyph color of a dead actor.
var CorpseColor = tcell.NewRGBColor(191, 0, 0)

// AttackResult holds the outcome of one attack.
type AttackResult struct {
	Damage int
	Killed bool
}

// Resolver computes attacks and writes their flavor text to a message log.
type Resolver struct {
	Log *message.Log
	// Player is used to pick colors and death text; may be nil.
	Player *world.Entity
}

// NewResolver creates a Resolver writing to log.
func NewResolver(log *message.Log, player *world.Entity) *Resolver {
	return &Resolver{Log: log, Player: player}
}

// Attack resolves one melee attack from attacker against target.
// Damage formula: attacker.Power - target.Defense; non-positive deals nothing.
// Both entities must be actors.
func (r *Resolver) Attack(attacker, target *world.Entity) AttackResult {
	if !attacker.IsActor() || !target.IsAlive() {
		return AttackResult{}
	}
	damage := attacker.Fighter.Power - target.Fighter.Defense
	desc := fmt.Sprintf("%s attacks %s", attacker.Name, target.Name)

	color := message.ColorEnemyAtk
	if attacker == r.Player {
		color = message.ColorPlayerAtk
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "combat",
		"attacker":  attacker.Name,
		"target":    target.Name,
		"damage":    damage,
	}).Debug("attack")

	if damage <= 0 {
		r.add(desc+" but does no damage.", color)
		return AttackResult{}
	}
	r.add(fmt.Sprintf("%s for %d hit points.", desc, damage), color)
	result := AttackResult{Damage: damage}
	if target.Fighter.TakeDamage(damage) {
		r.Kill(target)
		result.Killed = true
	}
	return result
}

// Kill demotes e to a corpse: it stops acting and blocking but stays in
// its world until something removes it explicitly.
func (r *Resolver) Kill(e *world.Entity) {
	if e == r.Player {
		r.add("You died!", message.ColorPlayerDie)
	} else {
		r.add(fmt.Sprintf("%s is dead!", e.Name), message.ColorEnemyDie)
	}
	e.Life = component.Dead
	e.AI = nil
	e.BlocksMovement = false
	e.Glyph = '%'
	e.Color = CorpseColor
	e.Name = "remains of " + e.Name
	e.RenderOrder = component.RenderCorpse
	if e.Fighter != nil {
		e.Fighter.HP = 0
	}
}

func (r *Resolver) add(text string, color tcell.Color) {
	if r.Log != nil {
		r.Log.Add(text, color)
	}
}
