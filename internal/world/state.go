package world

import (
	"yarl/internal/component"
	"yarl/internal/ecs"
	"yarl/internal/gamemap"
	"yarl/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// State owns one level: the tile grid and every entity on it.
// It is not safe for concurrent use; turns are resolved one at a time.
type State struct {
	Map *gamemap.GameMap

	id       uuid.UUID
	entities *ecs.Arena[*Entity]
}

// New creates an empty world around m.
func New(m *gamemap.GameMap) *State {
	return &State{
		Map:      m,
		id:       uuid.New(),
		entities: ecs.NewArena[*Entity](),
	}
}

// ID returns the unique identity of this world.
func (s *State) ID() uuid.UUID { return s.id }

// Len returns the number of registered entities.
func (s *State) Len() int { return s.entities.Len() }

// Entity returns the entity registered under id, or nil.
func (s *State) Entity(id ecs.EntityID) *Entity {
	e, _ := s.entities.Get(id)
	return e
}

// Entities returns every registered entity in insertion order.
func (s *State) Entities() []*Entity {
	return s.entities.Values()
}

// Actors returns the living actors in insertion order.
func (s *State) Actors() []*Entity {
	var out []*Entity
	s.entities.Each(func(_ ecs.EntityID, e *Entity) bool {
		if e.IsAlive() {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Contains reports whether e itself is registered in s.
func (s *State) Contains(e *Entity) bool {
	if e == nil || e.id == ecs.NilEntity {
		return false
	}
	got, ok := s.entities.Get(e.id)
	return ok && got == e
}

// BlockingEntityAt returns the first blocking entity at (x, y) in insertion
// order, or nil.
func (s *State) BlockingEntityAt(x, y int) *Entity {
	var found *Entity
	s.entities.Each(func(_ ecs.EntityID, e *Entity) bool {
		if e.BlocksMovement && e.X == x && e.Y == y {
			found = e
			return false
		}
		return true
	})
	return found
}

// EntitiesAt returns every entity at (x, y) in insertion order.
func (s *State) EntitiesAt(x, y int) []*Entity {
	var out []*Entity
	s.entities.Each(func(_ ecs.EntityID, e *Entity) bool {
		if e.X == x && e.Y == y {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Remove deregisters e. Removal is always explicit; nothing is collected
// implicitly. Reports whether e was registered here.
func (s *State) Remove(e *Entity) bool {
	if !s.Contains(e) {
		return false
	}
	s.entities.Remove(e.id)
	e.id = ecs.NilEntity
	e.owner = nil
	return true
}

func (s *State) register(e *Entity) {
	e.id = s.entities.Insert(e)
	e.owner = s
}

func (s *State) mustBeInBounds(x, y int) {
	if !s.Map.InBounds(x, y) {
		panic(&gamemap.BoundsError{X: x, Y: y, Width: s.Map.Width, Height: s.Map.Height})
	}
}

// Spawn clones prototype, puts the clone at (x, y) and registers it in s.
// The prototype itself is never registered or modified.
func Spawn(prototype *Entity, s *State, x, y int) *Entity {
	s.mustBeInBounds(x, y)
	clone := prototype.Clone()
	clone.X, clone.Y = x, y
	s.register(clone)
	logger.Log.WithFields(logrus.Fields{
		"component": "world",
		"entity":    clone.Name,
		"id":        clone.id,
		"x":         x,
		"y":         y,
	}).Debug("spawned")
	return clone
}

// Place relocates e to (x, y). When s is non-nil and is not e's current
// owner, e is deregistered from its previous owner and registered in s.
// The move across worlds completes before any other code can observe
// either collection.
//
// Place panics with an *InvariantError when e claims an owner that does not
// hold it, such as a by-value copy of a registered entity.
func Place(e *Entity, x, y int, s *State) {
	target := s
	if target == nil {
		target = e.owner
	}
	if target != nil {
		target.mustBeInBounds(x, y)
	}
	if e.owner != nil && !e.owner.Contains(e) {
		panic(&InvariantError{X: e.X, Y: e.Y, Entity: e.id, Reason: "stale owner reference"})
	}

	e.X, e.Y = x, y
	if s == nil || s == e.owner {
		return
	}
	if prev := e.owner; prev != nil {
		prev.Remove(e)
	}
	s.register(e)
}

// CheckInvariants verifies the entity bookkeeping of s: every entity is in
// bounds and points back at s, and no cell holds two blockers.
func (s *State) CheckInvariants() error {
	var err error
	blockers := mapset.New[component.Position]()
	s.entities.Each(func(id ecs.EntityID, e *Entity) bool {
		switch {
		case e.owner != s || e.id != id:
			err = &InvariantError{X: e.X, Y: e.Y, Entity: id, Reason: "stale owner reference"}
		case !s.Map.InBounds(e.X, e.Y):
			err = &InvariantError{X: e.X, Y: e.Y, Entity: id, Reason: "out of bounds"}
		case e.BlocksMovement && blockers.Has(e.Position):
			err = &InvariantError{X: e.X, Y: e.Y, Entity: id, Reason: "second blocking entity in cell"}
		case e.BlocksMovement:
			blockers.Put(e.Position)
		}
		return err == nil
	})
	return err
}

// MustCheckInvariants panics when CheckInvariants fails.
func (s *State) MustCheckInvariants() {
	if err := s.CheckInvariants(); err != nil {
		panic(err)
	}
}
