// yarl-server serves the game over SSH. Every connection gets its own
// independent dungeon. Build:
//
//	go build -o yarl-server ./cmd/server
//
// Usage:
//
//	./yarl-server [--config yarl.yaml] [--port 2222] [--key server_host_key]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"yarl/internal/config"
	"yarl/internal/game"
	internalssh "yarl/internal/ssh"
	"yarl/internal/telemetry"
	"yarl/pkg/logger"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	configPath := flag.String("config", "yarl.yaml", "Path to the YAML config file (optional)")
	port := flag.Int("port", 0, "SSH server port (overrides config)")
	keyFile := flag.String("key", "", "Path to the PEM-encoded host key (overrides config; auto-generated if absent)")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Log.WithField("component", "server")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, running without tracing")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.WithError(err).Warn("telemetry shutdown")
			}
		}()
	}

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey)
	if err != nil {
		log.WithError(err).Fatal("host key")
	}

	srv := newServer(cfg)
	sshSrv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth or
		// gossh.PasswordAuth options for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	log.WithField("port", cfg.Server.Port).Info("listening")
	if err := sshSrv.ListenAndServe(); err != nil {
		log.WithError(err).Error("server stopped")
	}
}

// server runs one private game per SSH session.
type server struct {
	cfg    config.Config
	active atomic.Int64
}

func newServer(cfg config.Config) *server { return &server{cfg: cfg} }

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the game so the SSH session stays open.
func (srv *server) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	if name == "" {
		name = "anonymous"
	}
	log := logger.Log.WithFields(logrus.Fields{
		"component": "server",
		"session":   uuid.NewString(),
		"player":    name,
		"remote":    s.RemoteAddr().String(),
	})

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	screen, err := newSessionScreen(tty, sessionTerm(s.Environ()))
	if err != nil {
		log.WithError(err).Warn("terminal setup failed")
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	n := srv.active.Add(1)
	defer srv.active.Add(-1)
	log.WithField("active", n).Info("session started")

	// Wake the game loop when the client disconnects.
	ctx := s.Context()
	go func() {
		<-ctx.Done()
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	g := game.New(screen, srv.cfg)
	g.Name = name
	if err := g.Run(ctx); err != nil {
		log.WithError(err).Error("game aborted")
	}
	log.Info("session ended")
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// newSessionScreen builds and initializes a tcell screen for tty.
// TERM must be set in the process environment before NewTerminfoScreenFromTty.
func newSessionScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// allowedTerms lists the TERM values clients may select; anything else
// falls back to defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

const defaultTerm = "xterm-256color"

// sessionTerm picks the TERM value from a session environment.
func sessionTerm(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[term] {
			return term
		}
	}
	return defaultTerm
}

const maxNameBytes = 16

// sanitizeName strips control characters from an SSH user name and limits
// it to maxNameBytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	log := logger.Log.WithFields(logrus.Fields{"component": "server", "path": path})
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info("loaded host key")
			return signer, nil
		}
	}

	log.Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "yarl server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			log.WithError(err).Warn("could not persist host key")
		}
	}
	return signer, nil
}
