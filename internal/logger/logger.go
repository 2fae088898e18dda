package logger

import (
	"os"

	"github.com/rs/zerolog"
)

func New() zerolog.Logger {
	return SetLevel(zerolog.DebugLevel)
}

func SetLevel(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger.Level(level)
}

// ForLevel parses a textual level such as "warn" and falls back to info.
func ForLevel(base zerolog.Logger, raw string) zerolog.Logger {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || level == zerolog.NoLevel {
		base.Warn().Str("level", raw).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	return base.Level(level)
}
