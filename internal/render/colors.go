package render

import "github.com/gdamore/tcell/v2"

// HUD colors.
var (
	ColorBarText   = tcell.NewRGBColor(0xFF, 0xFF, 0xFF)
	ColorBarFilled = tcell.NewRGBColor(0x00, 0x60, 0x00)
	ColorBarEmpty  = tcell.NewRGBColor(0x40, 0x10, 0x10)
	ColorSeparator = tcell.ColorGray
)
