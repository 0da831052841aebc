package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs a zerolog.Logger for the given environment: console
// output with debug level in development, JSON at info level elsewhere, and
// a silent logger for tests.
func NewLogger(appEnv string) zerolog.Logger {
	switch appEnv {
	case "test":
		return zerolog.New(io.Discard).Level(zerolog.Disabled)
	case "development", "cli":
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Logger()
	}
	return zerolog.New(os.Stdout).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", "onmodel").
		Logger()
}

// DiscardLogger returns a logger that drops every event. Clients use it when
// no logger is injected.
func DiscardLogger() *Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// Logger aliases the zerolog.Logger so callers outside the infra package can
// depend on the logging contract without importing the third-party module
// directly.
type Logger = zerolog.Logger
