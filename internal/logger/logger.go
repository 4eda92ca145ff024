package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development mode gets a human-readable
// console writer; anything else logs structured JSON to stdout.
func New(level string, development bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var lg zerolog.Logger
	if development {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		lg = zerolog.New(output)
	} else {
		lg = zerolog.New(os.Stdout)
	}

	return lg.Level(lvl).With().Timestamp().Logger()
}
