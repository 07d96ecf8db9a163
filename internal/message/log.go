// Package message keeps the in-game message log.
package message

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
)

// Colors used across the game for log lines.
var (
	ColorWhite       = tcell.NewRGBColor(0xFF, 0xFF, 0xFF)
	ColorPlayerAtk   = tcell.NewRGBColor(0xE0, 0xE0, 0xE0)
	ColorEnemyAtk    = tcell.NewRGBColor(0xFF, 0xC0, 0xC0)
	ColorPlayerDie   = tcell.NewRGBColor(0xFF, 0x30, 0x30)
	ColorEnemyDie    = tcell.NewRGBColor(0xFF, 0xA0, 0x30)
	ColorWelcomeText = tcell.NewRGBColor(0x20, 0xA0, 0xFF)
	ColorImpossible  = tcell.NewRGBColor(0x80, 0x80, 0x80)
)

// Message is one log line. Repeated identical lines stack into Count.
type Message struct {
	Text  string
	Color tcell.Color
	Count int
}

// FullText returns the text with a "(xN)" suffix for stacked lines.
func (m Message) FullText() string {
	if m.Count > 1 {
		return fmt.Sprintf("%s (x%d)", m.Text, m.Count)
	}
	return m.Text
}

// Log is an append-only list of messages.
type Log struct {
	messages []Message
}

// NewLog creates an empty log.
func NewLog() *Log { return &Log{} }

// Add appends text, stacking it onto the previous line when identical.
func (l *Log) Add(text string, color tcell.Color) {
	if n := len(l.messages); n > 0 && l.messages[n-1].Text == text {
		l.messages[n-1].Count++
		return
	}
	l.messages = append(l.messages, Message{Text: text, Color: color, Count: 1})
}

// Messages returns a copy of every message, oldest first.
func (l *Log) Messages() []Message {
	return slices.Clone(l.messages)
}

// Last returns a copy of at most n of the newest messages, oldest first.
func (l *Log) Last(n int) []Message {
	if n <= 0 {
		return nil
	}
	if n > len(l.messages) {
		n = len(l.messages)
	}
	return slices.Clone(l.messages[len(l.messages)-n:])
}
