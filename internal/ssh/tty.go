// Package ssh adapts gliderlabs SSH sessions to tcell terminals so every
// connection can drive its own game screen.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty on top of one SSH session.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell
	done   chan struct{}
	closed bool
}

// NewSessionTty wraps s. pty holds the initial window size; winCh delivers
// later resizes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		done:    make(chan struct{}),
	}
}

// Read reads keyboard input from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close stops resize notifications and closes the session channel.
// It is safe to call more than once.
func (t *SessionTty) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.done)
	t.mu.Unlock()
	return t.session.Close()
}

// Start is a no-op: the channel is open once the handler runs.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op: the server handler owns the channel's lifetime.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op: writes go straight to the channel.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the client's current terminal size.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. The first call starts a
// goroutine that follows winCh until it closes or the tty is closed.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	first := t.cb == nil
	t.cb = cb
	t.mu.Unlock()
	if !first || t.winCh == nil {
		return
	}

	go func() {
		for {
			select {
			case <-t.done:
				return
			case win, ok := <-t.winCh:
				if !ok {
					return
				}
				t.mu.Lock()
				t.window = win
				localCb := t.cb
				t.mu.Unlock()
				if localCb != nil {
					localCb()
				}
			}
		}
	}()
}
