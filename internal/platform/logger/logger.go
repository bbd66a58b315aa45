package logger

import (
	"go.uber.org/zap"
)

// Logger wraps zap.Logger.
type Logger struct {
	*zap.Logger
}

// New creates a new logger instance.
func New(level, format string) (*Logger, error) {
	var cfg zap.Config

	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zapLogger, err := cfg.Build(
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

// WithMatchID adds match_id to the logger context, identifying one
// Match call across its fanned-out scorer goroutines.
func (l *Logger) WithMatchID(matchID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(zap.String("match_id", matchID)),
	}
}

// WithListeningReason adds the resolved listening reason driving
// matrix selection.
func (l *Logger) WithListeningReason(reason string) *Logger {
	return &Logger{
		Logger: l.Logger.With(zap.String("listening_reason", reason)),
	}
}

// WithComponent adds the scorer component name, for per-scorer log
// lines (timeouts, panics).
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With(zap.String("component", component)),
	}
}

// WithError adds error_code to the logger context.
func (l *Logger) WithError(errorCode string) *Logger {
	return &Logger{
		Logger: l.Logger.With(zap.String("error_code", errorCode)),
	}
}

// WithDuration adds duration to the logger context.
func (l *Logger) WithDuration(duration int64) *Logger {
	return &Logger{
		Logger: l.Logger.With(zap.Int64("duration_ms", duration)),
	}
}
