// ABOUTME: zerolog setup shared by the runtime packages
// ABOUTME: Reads the log level from the environment

package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const EnvLogLevel = "GCROOT_LOG_LEVEL"

// New returns a console logger tagged with component. The level comes from
// GCROOT_LOG_LEVEL and defaults to info.
func New(component string) zerolog.Logger {
	return NewWriter(os.Stderr, component)
}

func NewWriter(w io.Writer, component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	level, ok := EnvLevel()
	if !ok {
		level = zerolog.InfoLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("component", component).Logger()
}

// EnvLevel returns the level named by GCROOT_LOG_LEVEL, or false when it is
// unset or unknown.
func EnvLevel() (zerolog.Level, bool) {
	return ParseLevel(os.Getenv(EnvLogLevel))
}

// ParseLevel maps a level name to a zerolog level. The second result is
// false for empty or unknown names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
