// Package logger provides a thin zerolog wrapper with a module-tagging
// helper so each subsystem logs under its own name.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Human-readable console output instead of JSON
}

// Logger wraps zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// New creates a configured logger
func New(cfg Config) Logger {
	level := parseLevel(cfg.Level)

	var l zerolog.Logger
	if cfg.Pretty {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		l = zerolog.New(output).Level(level).With().Timestamp().Logger()
	} else {
		l = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	return Logger{l}
}

// Module returns a child logger tagged with a module name
func (l Logger) Module(name string) Logger {
	return Logger{l.With().Str("module", name).Logger()}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
