// Package logger holds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger. Until Init is called it discards everything, so
// packages can log freely from tests.
var Log = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures the global logger from the environment:
//   - LOG_LEVEL: logrus level name, default "info"
//   - LOG_FORMAT: "json" or "text"
//   - LOG_FILE: path to append to; when empty logs go to w
//
// The terminal UI owns stdout, so the local binary passes io.Discard or a
// file rather than os.Stdout.
func Init(w io.Writer) error {
	l := logrus.New()

	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	out := w
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
	}
	if out == nil {
		out = io.Discard
	}
	l.SetOutput(out)

	Log = l
	return nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
