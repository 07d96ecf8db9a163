// Package factory defines the entity prototypes that levels spawn from.
package factory

import (
	"yarl/internal/component"
	"yarl/internal/config"
	"yarl/internal/world"

	"github.com/gdamore/tcell/v2"
)

// Prototypes holds one unbound template per entity kind. Spawn clones them;
// the templates themselves never enter a world.
type Prototypes struct {
	Player *world.Entity
	Orc    *world.Entity
	Troll  *world.Entity
}

func fighter(s config.FighterStats) component.Fighter {
	return component.NewFighter(s.HP, s.Defense, s.Power)
}

// monsterAI maps the configured behavior name; anything but "stationary"
// chases.
func monsterAI(s config.FighterStats) *component.AI {
	if s.Behavior == "stationary" {
		return &component.AI{Behavior: component.BehaviorStationary}
	}
	return &component.AI{Behavior: component.BehaviorHostile}
}

// NewPrototypes builds the prototypes with stats taken from cfg.
func NewPrototypes(cfg config.CombatConfig) Prototypes {
	return Prototypes{
		Player: NewPlayer(cfg.Player),
		Orc: world.NewActor("Orc", 'o', tcell.NewRGBColor(63, 127, 63),
			fighter(cfg.Orc), monsterAI(cfg.Orc)),
		Troll: world.NewActor("Troll", 'T', tcell.NewRGBColor(0, 127, 0),
			fighter(cfg.Troll), monsterAI(cfg.Troll)),
	}
}

// NewPlayer creates the player template. The player has no AI: its intents
// come from input.
func NewPlayer(stats config.FighterStats) *world.Entity {
	return world.NewActor("Player", '@', tcell.NewRGBColor(255, 255, 255), fighter(stats), nil)
}
