package render

import (
	"fmt"

	"yarl/internal/message"
	"yarl/internal/world"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	barWidth    = 20
	logX        = barWidth + 1
	logMessages = HUDHeight - 2
)

// drawHUD renders the separator, the HP bar and the message log under the map.
func (r *Renderer) drawHUD(player *world.Entity, log *message.Log) {
	screenW, screenH := r.size()
	hudY := screenH - HUDHeight
	if hudY < 0 {
		return
	}

	r.drawHLine(hudY, screenW, ColorSeparator)
	if player.Fighter != nil {
		r.drawBar(0, hudY+1, player.Fighter.HP, player.Fighter.MaxHP)
	}
	if log != nil {
		r.drawLog(logX, hudY+1, screenW-logX, log.Last(logMessages))
	}
}

// drawBar renders "HP: cur/max" over a bar filled in proportion to cur.
func (r *Renderer) drawBar(x, y, cur, maxVal int) {
	filled := 0
	if maxVal > 0 {
		filled = max(0, cur) * barWidth / maxVal
	}
	for i := 0; i < barWidth; i++ {
		bg := ColorBarEmpty
		if i < filled {
			bg = ColorBarFilled
		}
		r.screen.SetContent(x+i, y, ' ', nil, tcell.StyleDefault.Background(bg))
	}
	text := fmt.Sprintf("HP: %d/%d", max(0, cur), maxVal)
	col := x + 1
	for _, ch := range text {
		bg := ColorBarEmpty
		if col-x < filled {
			bg = ColorBarFilled
		}
		r.screen.SetContent(col, y, ch, nil, tcell.StyleDefault.Foreground(ColorBarText).Background(bg))
		col += runewidth.RuneWidth(ch)
	}
}

// drawLog prints msgs oldest first, each clipped to width columns.
func (r *Renderer) drawLog(x, y, width int, msgs []message.Message) {
	if width <= 0 {
		return
	}
	for i, m := range msgs {
		text := runewidth.Truncate(m.FullText(), width, "")
		r.drawText(x, y+i, text, tcell.StyleDefault.Foreground(m.Color))
	}
}

func (r *Renderer) drawHLine(y, width int, color tcell.Color) {
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
