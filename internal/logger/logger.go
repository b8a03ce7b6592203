package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a logger
type Logger struct {
	*zap.SugaredLogger
}

// New creates a new logger that writes to stdout, and errors to stderr
func New(loglevel zapcore.Level) *Logger {
	return NewWithOutput(loglevel, os.Stdout)
}

// NewWithOutput creates a new logger that writes to the given output, and errors to stderr
// Used when stdout carries image data
func NewWithOutput(loglevel zapcore.Level, output zapcore.WriteSyncer) *Logger {
	// Configure console output.
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)

	// Log errors to stderr
	stderrLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= loglevel && lvl >= zapcore.ErrorLevel
	})

	outputLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= loglevel && lvl < zapcore.ErrorLevel
	})

	// Merge the outputs, encoders, and level-handling functions
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), stderrLevel),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(output), outputLevel),
	)

	// Construct our logger
	log := zap.New(core, zap.AddCaller())

	// Redirect stdlib log package to zap
	_, _ = zap.RedirectStdLogAt(log, zapcore.ErrorLevel)

	return &Logger{
		log.Sugar(),
	}
}

// FromCore wraps an existing zap core, mostly useful for observing logs in tests
func FromCore(core zapcore.Core) *Logger {
	return &Logger{
		zap.New(core).Sugar(),
	}
}
