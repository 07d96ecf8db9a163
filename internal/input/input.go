// Package input maps terminal key events to player actions.
package input

import (
	"yarl/internal/action"

	"github.com/gdamore/tcell/v2"
)

var arrowKeys = map[tcell.Key][2]int{
	tcell.KeyUp:    {0, -1},
	tcell.KeyDown:  {0, 1},
	tcell.KeyLeft:  {-1, 0},
	tcell.KeyRight: {1, 0},
	tcell.KeyHome:  {-1, -1},
	tcell.KeyEnd:   {-1, 1},
	tcell.KeyPgUp:  {1, -1},
	tcell.KeyPgDn:  {1, 1},
}

// vi-keys, plus the numpad layout for terminals that send digits.
var runeKeys = map[rune][2]int{
	'k': {0, -1},
	'j': {0, 1},
	'h': {-1, 0},
	'l': {1, 0},
	'y': {-1, -1},
	'u': {1, -1},
	'b': {-1, 1},
	'n': {1, 1},
	'8': {0, -1},
	'2': {0, 1},
	'4': {-1, 0},
	'6': {1, 0},
	'7': {-1, -1},
	'9': {1, -1},
	'1': {-1, 1},
	'3': {1, 1},
}

// KeyToAction maps a key event to the player's intent. Movement keys
// produce bump actions so walking into a monster attacks it. ok is false
// for keys with no binding.
func KeyToAction(ev *tcell.EventKey) (a action.Action, ok bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action.EscapeAction(), true
	case tcell.KeyRune:
	default:
		if d, found := arrowKeys[ev.Key()]; found {
			return action.BumpAction(d[0], d[1]), true
		}
		return action.Action{}, false
	}

	r := ev.Rune()
	switch r {
	case '.', '5':
		return action.WaitAction(), true
	case 'q', 'Q':
		return action.EscapeAction(), true
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if d, found := runeKeys[r]; found {
		return action.BumpAction(d[0], d[1]), true
	}
	return action.Action{}, false
}
