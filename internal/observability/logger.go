// Package observability holds the shared logging setup for the command
// line tools.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger builds the process-wide logger writing human-readable lines
// to stderr, tagged with the tool name. Page and packet output stays on
// stdout, so diagnostics never corrupt piped data.
func InitLogger(app string, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

// Silent returns a logger that discards everything, for --quiet runs.
func Silent() zerolog.Logger {
	return zerolog.New(io.Discard)
}
