package monitoring

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the process-wide diagnostic logger. It discards everything
// until Setup replaces it.
var Logger = zerolog.Nop()

// setLogger replaces the package logger
func setLogger(l zerolog.Logger) {
	Logger = l
}

// New creates a console logger writing to w at the given level
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a level name. An empty name means "warn".
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Setup installs a stderr console logger at the named level and returns it
func Setup(levelName string) (zerolog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return Logger, err
	}
	setLogger(New(os.Stderr, level))
	return Logger, nil
}
