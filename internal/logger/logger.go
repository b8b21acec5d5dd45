package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type implLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a new Logger instance writing console-encoded entries to stdout
func New(level string) Logger {
	return NewWithFormat(level, "console")
}

// NewWithFormat creates a Logger with the given level and encoding ("console" or "json")
func NewWithFormat(level, format string) Logger {
	return NewWithWriter(level, format, os.Stdout)
}

// NewWithWriter is NewWithFormat writing to w. The mcp command logs to a file
// because stdout carries the protocol.
func NewWithWriter(level, format string, w io.Writer) Logger {
	lvl := parseLevel(level)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	return fromZap(zap.New(zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), lvl)))
}

// NewNop returns a Logger that discards everything
func NewNop() Logger {
	return fromZap(zap.NewNop())
}

// fromZap wraps z; level filtering is left to its core
func fromZap(z *zap.Logger) Logger {
	return &implLogger{sugar: z.Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel // default to info
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{sugar: l.sugar.With(key, value)}
}

func (l *implLogger) Sync() error {
	return l.sugar.Sync()
}
