// Package game runs one player's session: level setup, the input/turn/draw
// loop and the end-of-run screen.
package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"yarl/internal/action"
	"yarl/internal/config"
	"yarl/internal/engine"
	"yarl/internal/factory"
	"yarl/internal/generate"
	"yarl/internal/input"
	"yarl/internal/message"
	"yarl/internal/render"
	"yarl/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// Game is the top-level orchestrator for one screen.
type Game struct {
	screen   tcell.Screen
	cfg      config.Config
	protos   factory.Prototypes
	renderer *render.Renderer
	engine   *engine.Engine
	runLog   RunLog
	log      *logrus.Entry

	// SaveRuns appends every finished run to the run log file.
	SaveRuns bool
	// Name identifies the player in logs.
	Name string
}

// New creates a Game drawing on an initialized screen.
// The drawn area is capped at the configured screen size.
func New(screen tcell.Screen, cfg config.Config) *Game {
	g := &Game{
		screen:   screen,
		cfg:      cfg,
		protos:   factory.NewPrototypes(cfg.Combat),
		renderer: render.NewRenderer(screen),
		log:      logger.Log.WithField("component", "game"),
	}
	g.renderer.Limit(cfg.Screen.Width, cfg.Screen.Height)
	g.checkSize()
	return g
}

// checkSize warns when the terminal is smaller than the configured screen.
// The game still runs; the camera scrolls over the map.
func (g *Game) checkSize() bool {
	w, h := g.screen.Size()
	if w >= g.cfg.Screen.Width && h >= g.cfg.Screen.Height {
		return true
	}
	g.log.WithFields(logrus.Fields{
		"terminal": fmt.Sprintf("%dx%d", w, h),
		"want":     fmt.Sprintf("%dx%d", g.cfg.Screen.Width, g.cfg.Screen.Height),
	}).Warn("terminal smaller than configured screen")
	return false
}

// Engine returns the engine of the current run, nil before the first.
func (g *Game) Engine() *engine.Engine { return g.engine }

// newRun generates a fresh level with a fresh player.
func (g *Game) newRun() {
	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	player := factory.NewPlayer(g.cfg.Combat.Player)
	s := generate.Generate(generate.FromConfig(g.cfg, rng), g.protos, player)
	log := message.NewLog()
	g.engine = engine.New(g.cfg, s, player, log)
	log.Add("Use hjklyubn or arrow keys to move, . to wait, Esc to quit.", message.ColorWhite)

	g.runLog = RunLog{Started: time.Now(), Seed: seed}
	g.log = logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"player":    g.Name,
		"world":     s.ID(),
		"seed":      seed,
	})
	g.log.Info("run started")
}

// Run is the main game loop. It supports consecutive runs via Try Again and
// returns when the player quits, the screen closes or ctx is done. A caller
// cancelling ctx should post a tcell.EventInterrupt to wake the loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()

	for {
		g.newRun()
		quit, err := g.play(ctx)
		g.finishRun()
		if err != nil || quit {
			return err
		}
		if !g.showEndScreen(ctx) {
			return nil
		}
	}
}

// play runs turns until the player quits (quit is true) or dies.
func (g *Game) play(ctx context.Context) (quit bool, err error) {
	for {
		if ctx.Err() != nil {
			return true, nil
		}
		g.draw()

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			return true, nil
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer.Resize()
			g.checkSize()
		case *tcell.EventKey:
			a, ok := input.KeyToAction(ev)
			if !ok {
				continue
			}
			_, err := g.engine.HandlePlayerAction(ctx, a)
			switch {
			case errors.Is(err, action.ErrEscape):
				return true, nil
			case err != nil:
				return false, fmt.Errorf("turn %d: %w", g.engine.Turn(), err)
			}
			if !g.engine.Player.IsAlive() {
				g.draw()
				return false, nil
			}
		}
	}
}

func (g *Game) draw() {
	g.renderer.Draw(g.engine.State, g.engine.Player, g.engine.Log)
}

func (g *Game) finishRun() {
	g.runLog = summarize(g.runLog, g.engine)
	g.log.WithFields(logrus.Fields{
		"turns": g.runLog.TurnsPlayed,
		"kills": g.runLog.TotalKills(),
		"died":  g.runLog.Died,
	}).Info("run finished")
	if !g.SaveRuns {
		return
	}
	if err := saveRunLog(g.runLog); err != nil {
		g.log.WithError(err).Warn("could not save run log")
	}
}

// putText writes a string to the screen at (x, y), one column per rune.
func (g *Game) putText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// showEndScreen renders the run summary and returns true if the player
// wants to try again, false to quit.
func (g *Game) showEndScreen(ctx context.Context) bool {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	gray := tcell.StyleDefault.Foreground(tcell.ColorGray)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	for {
		if ctx.Err() != nil {
			return false
		}
		g.screen.Clear()
		sw, _ := g.screen.Size()

		sep := func(y int) {
			for x := 0; x < sw; x++ {
				g.screen.SetContent(x, y, '─', nil, gray)
			}
		}
		// label prints a left-aligned key at column 2 and value at column 22.
		label := func(y int, l, v string) {
			g.putText(2, y, l, dim)
			g.putText(22, y, v, white)
		}

		y := 1
		sep(y)
		y += 2

		if g.runLog.Died {
			g.putText(2, y, "YOU DIED", gold)
		} else {
			g.putText(2, y, "RUN ENDED", gold)
		}
		y += 2

		label(y, "Turns Survived:", fmt.Sprintf("%d", g.runLog.TurnsPlayed))
		y++
		label(y, "Damage Taken:", fmt.Sprintf("%d", g.runLog.DamageTaken))
		y++
		label(y, "Enemies Slain:", fmt.Sprintf("%d", g.runLog.TotalKills()))
		y++
		if b := g.runLog.KillBreakdown(); b != "" {
			g.putText(4, y, b, dim)
			y++
		}
		label(y, "Seed:", fmt.Sprintf("%d", g.runLog.Seed))
		y += 2

		sep(y)
		y += 2

		g.putText(2, y, "[R] Try Again", green)
		g.putText(18, y, "[Q] Quit", red)

		g.screen.Show()

		switch ev := g.screen.PollEvent().(type) {
		case nil:
			return false
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'r', 'R':
					return true
				case 'q', 'Q':
					return false
				}
			case tcell.KeyEscape:
				return false
			}
		}
	}
}
