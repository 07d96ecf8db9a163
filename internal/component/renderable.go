package component

import "github.com/gdamore/tcell/v2"

// RenderOrder layers entities that share a cell; higher draws on top.
type RenderOrder uint8

const (
	RenderCorpse RenderOrder = iota
	RenderItem
	RenderActor
)

type Renderable struct {
	Glyph       rune
	Color       tcell.Color
	RenderOrder RenderOrder
}
