// Package logging builds the zap logger shared by the game and the headless
// runner.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where log output goes and how much of it is kept
type Options struct {
	// FilePath is the rotated log file. Empty means no file output.
	FilePath string

	// Console also writes to stderr
	Console bool

	// Level is the minimum enabled level, e.g. "debug" or "info"
	Level string

	// Rotation limits for the log file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultOptions logs at info level to stderr only
func DefaultOptions() Options {
	return Options{
		Console:    true,
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
	}
}

// EncoderConfig is the console layout used for every sink
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

// New creates a logger from opts. With neither a file nor the console
// selected it returns a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
	}

	var sinks []zapcore.WriteSyncer
	if opts.FilePath != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB, // MB
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays, // days
			Compress:   false,
		}))
	}
	if opts.Console {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}
	if len(sinks) == 0 {
		return zap.NewNop(), nil
	}

	return newLogger(zapcore.NewMultiWriteSyncer(sinks...), level), nil
}

// NewWriter creates a logger writing to w at the given level
func NewWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	return newLogger(zapcore.AddSync(w), level)
}

func newLogger(ws zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(EncoderConfig()), ws, level)
	return zap.New(core, zap.AddCaller())
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync(logger *zap.Logger) {
	if logger != nil {
		_ = logger.Sync()
	}
}
