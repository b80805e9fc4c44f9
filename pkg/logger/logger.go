package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string
	// ServiceName is attached to every entry
	ServiceName string
	// Development enables console encoding and caller info
	Development bool
}

// Logger wraps zap with a stable field-based API
type Logger struct {
	zl *zap.Logger
}

var globalLogger = Nop()

// Init builds the global logger from the given configuration
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{Level: "info"}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	if cfg.ServiceName != "" {
		zl = zl.With(zap.String("service", cfg.ServiceName))
	}

	globalLogger = &Logger{zl: zl}
	return nil
}

// Get returns the global logger
func Get() *Logger {
	return globalLogger
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

// Sync flushes any buffered log entries
func Sync() error {
	return globalLogger.zl.Sync()
}

// With returns a child logger with the given fields attached
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zl: l.zl.With(fields...)}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zl.Debug(msg, fields...)
}

// Info logs at info level
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zl.Info(msg, fields...)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zl.Warn(msg, fields...)
}

// Error logs at error level
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zl.Error(msg, fields...)
}

// Fatal logs at fatal level and exits
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zl.Fatal(msg, fields...)
}

// Field constructors, re-exported so call sites import one package.

func String(key, value string) zap.Field           { return zap.String(key, value) }
func Int(key string, value int) zap.Field          { return zap.Int(key, value) }
func Int64(key string, value int64) zap.Field      { return zap.Int64(key, value) }
func Float64(key string, value float64) zap.Field  { return zap.Float64(key, value) }
func Bool(key string, value bool) zap.Field        { return zap.Bool(key, value) }
func Duration(key string, d time.Duration) zap.Field { return zap.Duration(key, d) }
func Time(key string, t time.Time) zap.Field       { return zap.Time(key, t) }
func Err(err error) zap.Field                      { return zap.Error(err) }
