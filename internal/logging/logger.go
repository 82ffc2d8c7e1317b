// Package logging provides the process-wide zap logger. Output goes to stderr
// or a rotated file, never stdout: stdout carries the MCP protocol.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	globalLogger = zap.NewNop()
	globalMu     sync.RWMutex
)

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// New creates a JSON logger writing to stderr. Unknown levels fall back to
// info.
func New(level string) (*zap.Logger, error) {
	lvl, _ := ParseLevel(level)

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build(zap.AddCallerSkip(1))
}

// Rotation controls log file rotation.
type Rotation struct {
	MaxSize    int  `yaml:"max_size"`    // max megabytes before rotation (default 100)
	MaxBackups int  `yaml:"max_backups"` // old rotated files to keep (default 3)
	MaxAge     int  `yaml:"max_age"`     // days to retain old files (default 28)
	Compress   bool `yaml:"compress"`    // gzip rotated files
}

// NewFile creates a JSON logger writing to a rotated file at path.
func NewFile(level, path string, rotation Rotation) (*zap.Logger, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	lvl, _ := ParseLevel(level)

	if rotation.MaxSize <= 0 {
		rotation.MaxSize = 100
	}
	if rotation.MaxBackups <= 0 {
		rotation.MaxBackups = 3
	}
	if rotation.MaxAge <= 0 {
		rotation.MaxAge = 28
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotation.MaxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     rotation.MaxAge,
		Compress:   rotation.Compress,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(writer), lvl)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

// NewConsole creates a human readable logger for command line use.
func NewConsole(level string) (*zap.Logger, error) {
	lvl, _ := ParseLevel(level)

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// Global returns the global logger. It discards everything until SetGlobal
// is called.
func Global() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobal replaces the global logger.
func SetGlobal(l *zap.Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

func Info(msg string, fields ...zap.Field) {
	Global().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Global().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Global().Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Global().Debug(msg, fields...)
}

// Sync flushes buffered entries.
func Sync() {
	_ = Global().Sync()
}
