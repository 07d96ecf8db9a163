package gamemap

import "github.com/gdamore/tcell/v2"

// Graphic is one drawable cell: a codepoint plus foreground and background.
type Graphic struct {
	Ch rune
	FG tcell.Color
	BG tcell.Color
}

// Style returns the tcell style for drawing g.
func (g Graphic) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(g.FG).Background(g.BG)
}

// Tile is an immutable terrain record. Dark is drawn for explored cells out
// of view, Light for cells currently in view.
type Tile struct {
	Walkable    bool
	Transparent bool
	Dark        Graphic
	Light       Graphic
}

// Shroud is drawn for cells that were never seen.
var Shroud = Graphic{Ch: ' ', FG: tcell.NewRGBColor(255, 255, 255), BG: tcell.NewRGBColor(0, 0, 0)}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{
		Walkable:    true,
		Transparent: true,
		Dark:        Graphic{Ch: ' ', FG: tcell.NewRGBColor(255, 255, 255), BG: tcell.NewRGBColor(50, 50, 150)},
		Light:       Graphic{Ch: ' ', FG: tcell.NewRGBColor(255, 255, 255), BG: tcell.NewRGBColor(200, 180, 50)},
	}
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{
		Walkable:    false,
		Transparent: false,
		Dark:        Graphic{Ch: ' ', FG: tcell.NewRGBColor(255, 255, 255), BG: tcell.NewRGBColor(0, 0, 100)},
		Light:       Graphic{Ch: ' ', FG: tcell.NewRGBColor(255, 255, 255), BG: tcell.NewRGBColor(130, 110, 50)},
	}
}
