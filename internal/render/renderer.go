// Package render draws a world and its message log onto a terminal screen.
// It only reads game state.
package render

import (
	"sort"

	"yarl/internal/gamemap"
	"yarl/internal/message"
	"yarl/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDHeight is the number of rows reserved below the map.
const HUDHeight = 7

// Screen is the subset of tcell.Screen the renderer draws through.
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
	Show()
}

// Renderer draws frames onto a screen.
type Renderer struct {
	screen Screen
	camera *Camera
	// maxW and maxH cap the drawn area; 0 means the whole terminal.
	maxW, maxH int
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen Screen) *Renderer {
	r := &Renderer{screen: screen, camera: NewCamera(0, 0)}
	r.Resize()
	return r
}

// Limit caps the drawn area at w×h cells, HUD included. Larger terminals
// leave the rest blank. Non-positive values remove the cap on that axis.
func (r *Renderer) Limit(w, h int) {
	r.maxW, r.maxH = max(0, w), max(0, h)
	r.Resize()
}

// Resize refits the viewport after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(0, h-HUDHeight)
}

// size is the terminal size clipped to the limit.
func (r *Renderer) size() (int, int) {
	w, h := r.screen.Size()
	if r.maxW > 0 {
		w = min(w, r.maxW)
	}
	if r.maxH > 0 {
		h = min(h, r.maxH)
	}
	return w, h
}

// Draw renders one full frame: terrain, entities on visible cells, the
// player's HP bar and the latest log messages.
func (r *Renderer) Draw(s *world.State, player *world.Entity, log *message.Log) {
	r.screen.Clear()
	r.camera.Follow(player.X, player.Y, s.Map.Width, s.Map.Height)
	r.drawMap(s.Map)
	r.drawEntities(s)
	r.drawHUD(player, log)
	r.screen.Show()
}

// drawMap renders every cell through the map's three-way appearance rule;
// cells never seen draw as Shroud.
func (r *Renderer) drawMap(m *gamemap.GameMap) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			g := m.Appearance(x, y, gamemap.Shroud)
			r.putGlyph(sx, sy, g.Ch, g.Style())
		}
	}
}

// drawEntities renders entities standing on visible cells, lowest
// RenderOrder first so actors cover items and corpses.
func (r *Renderer) drawEntities(s *world.State) {
	var shown []*world.Entity
	for _, e := range s.Entities() {
		if s.Map.Visible(e.X, e.Y) {
			shown = append(shown, e)
		}
	}
	sort.SliceStable(shown, func(i, j int) bool {
		return shown[i].RenderOrder < shown[j].RenderOrder
	})

	for _, e := range shown {
		sx, sy, onScreen := r.camera.WorldToScreen(e.X, e.Y)
		if !onScreen {
			continue
		}
		bg := s.Map.Appearance(e.X, e.Y, gamemap.Shroud).BG
		r.putGlyph(sx, sy, e.Glyph, tcell.StyleDefault.Foreground(e.Color).Background(bg))
	}
}

// putGlyph draws ch at (x, y), padding the second column of wide runes.
func (r *Renderer) putGlyph(x, y int, ch rune, style tcell.Style) {
	r.screen.SetContent(x, y, ch, nil, style)
	if runewidth.RuneWidth(ch) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
