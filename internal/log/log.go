package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
)

const envDevelopment = "development"

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is application.log_level when it parses, otherwise trace in
// development and info everywhere else.
func Level(cfg config.Application) zerolog.Level {
	if cfg.LogLevel != "" {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			return lvl
		}
	}
	if cfg.Env == envDevelopment {
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

func console(cfg config.Application) io.Writer {
	if cfg.Env == envDevelopment {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

// Get builds the process logger on first call, writing to stdout and to a
// rotated file at filepath. Later calls return that logger unchanged.
func Get(filepath string, cfg config.Application) zerolog.Logger {
	once.Do(func() {
		zerolog.DurationFieldUnit = time.Millisecond
		zerolog.ErrorFieldName = "error"
		zerolog.ErrorStackFieldName = "stack-trace"
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.LevelFieldName = "level"
		zerolog.MessageFieldName = "message"
		zerolog.TimestampFieldName = "timestamp"

		file := &lumberjack.Logger{
			Filename:   filepath,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}

		logger = zerolog.New(zerolog.MultiLevelWriter(console(cfg), file)).
			Level(Level(cfg)).
			With().
			Timestamp().
			Caller().
			Stack().
			Str("env", cfg.Env).
			Int("pid", os.Getpid()).
			Logger().
			Hook(AttachTraceIdFromContext())

		logger.Info().
			Str(constants.KEY_TAG, "log Get").
			Str("file", filepath).
			Stringer("level", logger.GetLevel()).
			Msg("initialized logger")
	})
	return logger
}

// Bootstrap is the stdout-only logger used before the configuration that
// decides the log level has been read.
func Bootstrap() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
}
