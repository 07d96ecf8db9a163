// Package engine runs turns: the player's action, then every hostile
// actor's, then a field-of-view refresh.
package engine

import (
	"context"
	"errors"

	"yarl/internal/action"
	"yarl/internal/ai"
	"yarl/internal/combat"
	"yarl/internal/config"
	"yarl/internal/fov"
	"yarl/internal/message"
	"yarl/internal/telemetry"
	"yarl/internal/world"
	"yarl/pkg/logger"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WelcomeText opens every new game's message log.
const WelcomeText = "Hello and welcome, adventurer, to yet another dungeon!"

// BlockedText is logged when the player walks into a wall, off the map or
// into something that will not budge.
const BlockedText = "That way is blocked."

// ErrPlayerDead is returned for any action other than escape once the
// player has died.
var ErrPlayerDead = errors.New("engine: player is dead")

// Engine owns one world and drives its turn loop. It is not safe for
// concurrent use; each game session has its own Engine.
type Engine struct {
	State  *world.State
	Player *world.Entity
	Log    *message.Log
	// Debug runs the world invariant check after every turn.
	Debug bool

	fovRadius int
	turn      int
	resolver  *action.Resolver
	tracer    trace.Tracer
}

// New wires an engine around s, computes the initial field of view and
// posts the welcome message.
func New(cfg config.Config, s *world.State, player *world.Entity, log *message.Log) *Engine {
	if log == nil {
		log = message.NewLog()
	}
	e := &Engine{
		State:     s,
		Player:    player,
		Log:       log,
		Debug:     cfg.Debug,
		fovRadius: cfg.FOV.Radius,
		resolver: &action.Resolver{
			Combat: combat.NewResolver(log, player),
			Log:    log,
		},
		tracer: telemetry.Tracer("engine"),
	}
	e.UpdateFOV()
	log.Add(WelcomeText, message.ColorWelcomeText)
	return e
}

// Turn returns the number of completed turns.
func (e *Engine) Turn() int { return e.turn }

// HandlePlayerAction resolves the player's intent. Every resolved action,
// including a blocked move, passes the turn: enemies act and the field of
// view is recomputed. Escape returns action.ErrEscape without passing the
// turn.
func (e *Engine) HandlePlayerAction(ctx context.Context, a action.Action) (action.Outcome, error) {
	ctx, span := e.tracer.Start(ctx, "engine.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("action", a.String()),
		attribute.Int("turn", e.turn),
		attribute.String("world", e.State.ID().String()),
	)

	if a.Kind != action.KindEscape && !e.Player.IsAlive() {
		return action.OutcomeNoActor, ErrPlayerDead
	}

	outcome, err := e.resolver.Resolve(e.State, e.Player, a)
	if err != nil {
		if !errors.Is(err, action.ErrEscape) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return outcome, err
	}
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	if outcome.Blocked() {
		e.Log.Add(BlockedText, message.ColorImpossible)
	}

	e.HandleEnemyTurns(ctx)
	e.UpdateFOV()
	e.turn++

	if e.Debug {
		e.State.MustCheckInvariants()
	}
	return outcome, nil
}

// HandleEnemyTurns gives every living AI actor one action, in insertion
// order, each resolved to completion before the next starts.
func (e *Engine) HandleEnemyTurns(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "engine.enemy_turns")
	defer span.End()

	acted := 0
	for _, actor := range e.State.Actors() {
		if actor == e.Player || actor.AI == nil || !actor.IsAlive() {
			continue
		}
		a := ai.Decide(e.State, actor, e.Player)
		if _, err := e.resolver.Resolve(e.State, actor, a); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "engine",
				"actor":     actor.Name,
				"action":    a.String(),
			}).WithError(err).Warn("enemy action failed")
			continue
		}
		acted++
	}
	span.SetAttributes(attribute.Int("actors", acted))
}

// UpdateFOV recomputes what the player can see.
func (e *Engine) UpdateFOV() {
	fov.Compute(e.State.Map, e.Player.X, e.Player.Y, e.fovRadius)
}
