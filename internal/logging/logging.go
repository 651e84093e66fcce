// Package logging builds the zap loggers handed to components that take an
// injected logger. Service-wide logging goes through nuts.L.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger.
// level: "debug", "info", "warn", "error" (default "info")
// format: "json" or "console" (default "json")
func New(level string, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build()
}

// Debug returns the diagnostic sink for raw payload dumps. It discards
// everything unless enabled; when enabled it writes through base's outputs
// but bypasses base's level, so dumps appear whatever logging.level says.
func Debug(enabled bool, base *zap.Logger) *zap.SugaredLogger {
	if !enabled || base == nil {
		return zap.NewNop().Sugar()
	}
	return zap.New(unfiltered{base.Core()}).Named("debug").Sugar()
}

// unfiltered accepts every level and hands entries straight to the
// wrapped core's Write.
type unfiltered struct {
	zapcore.Core
}

func (c unfiltered) Enabled(zapcore.Level) bool { return true }

func (c unfiltered) With(fields []zapcore.Field) zapcore.Core {
	return unfiltered{c.Core.With(fields)}
}

func (c unfiltered) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, c)
}
