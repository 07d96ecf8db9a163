package world

import (
	"yarl/internal/component"
	"yarl/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// Entity is any positioned world object: the player, monsters, corpses.
// An entity with a Fighter is an actor.
type Entity struct {
	component.Position
	component.Renderable

	Name           string
	BlocksMovement bool

	Fighter *component.Fighter
	AI      *component.AI
	Life    component.Life

	id    ecs.EntityID
	owner *State
}

// NewEntity creates a free-standing entity that belongs to no world yet.
func NewEntity(name string, glyph rune, color tcell.Color, blocks bool) *Entity {
	return &Entity{
		Name:           name,
		BlocksMovement: blocks,
		Renderable: component.Renderable{
			Glyph:       glyph,
			Color:       color,
			RenderOrder: component.RenderCorpse,
		},
	}
}

// NewActor creates a free-standing blocking actor with combat and AI
// capabilities. A nil ai leaves the actor inert, as for the player.
func NewActor(name string, glyph rune, color tcell.Color, fighter component.Fighter, ai *component.AI) *Entity {
	e := NewEntity(name, glyph, color, true)
	e.RenderOrder = component.RenderActor
	e.Fighter = &fighter
	if ai != nil {
		a := *ai
		e.AI = &a
	}
	return e
}

// ID returns the handle of e inside its owning world, or ecs.NilEntity.
func (e *Entity) ID() ecs.EntityID { return e.id }

// Owner returns the world e is bound to, or nil.
func (e *Entity) Owner() *State { return e.owner }

// IsActor reports whether e has a combat capability.
func (e *Entity) IsActor() bool { return e.Fighter != nil }

// IsAlive reports whether e is an actor that can still act.
func (e *Entity) IsAlive() bool { return e.IsActor() && e.Life == component.Alive }

// Move shifts e by (dx, dy). It performs no checks; see action.Resolve.
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Clone returns an independent copy of e that shares no mutable state with
// it and is bound to no world.
func (e *Entity) Clone() *Entity {
	c := *e
	if e.Fighter != nil {
		f := *e.Fighter
		c.Fighter = &f
	}
	if e.AI != nil {
		a := *e.AI
		c.AI = &a
	}
	c.id = ecs.NilEntity
	c.owner = nil
	return &c
}

func (e *Entity) String() string {
	return e.Name
}
