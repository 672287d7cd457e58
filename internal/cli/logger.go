package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a zerolog logger writing to out.
func newLogger(out io.Writer, format string, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var zl zerolog.Logger
	if format == "json" {
		zl = zerolog.New(out)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	}

	return zl.Level(level).With().Timestamp().Logger()
}
