package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZapLogger writes human-readable log lines to stderr.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a console logger at the given level
// (debug, info, warn, error). Unknown levels fall back to info.
func NewZapLogger(level string) (*ZapLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.Development = false
	config.DisableStacktrace = true
	config.DisableCaller = true
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

func (l *ZapLogger) Logf(format string, args ...interface{}) {
	l.sugar.Infof(strings.TrimSuffix(format, "\n"), args...)
}

func (l *ZapLogger) Log(msg string) { l.sugar.Info(msg) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(strings.TrimSuffix(format, "\n"), args...)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(strings.TrimSuffix(format, "\n"), args...)
}

// FileOptions configures a rotated log file.
type FileOptions struct {
	Path string
	// MaxSize is in megabytes, MaxAge in days.
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// WithFile returns a logger that also writes JSON entries to a rotated file,
// at the same level as l.
func (l *ZapLogger) WithFile(opts FileOptions) *ZapLogger {
	core := l.sugar.Desugar().Core()
	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(writer),
		core,
	)
	return &ZapLogger{sugar: zap.New(zapcore.NewTee(core, fileCore)).Sugar()}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error { return l.sugar.Sync() }

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
