package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log level and output format.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New builds the service logger. JSON output is the default; "console" gives
// the human-readable writer for local runs. Unknown levels fall back to info.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stdout

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).
		Level(level(cfg.Level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

func level(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return l
}
