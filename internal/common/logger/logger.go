package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger emits structured JSON log entries keyed by action name.
// Every entry carries the owning service and hostname.
type Logger struct {
	service string
	zl      *zap.Logger
}

func New(service string) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "action"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	cfg.InitialFields = map[string]any{
		"service":  service,
		"hostname": hostname(),
	}

	zl, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		panic(err)
	}
	return &Logger{service: service, zl: zl}
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.zl.Info(action, toZapFields(fields)...)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.zl.Debug(action, toZapFields(fields)...)
}

func (l *Logger) Warn(action string, fields map[string]any) {
	l.zl.Warn(action, toZapFields(fields)...)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.String("error", err.Error()))
	}
	l.zl.Error(action, zf...)
}

// Sync flushes buffered entries. Safe to call on shutdown.
func (l *Logger) Sync() error { return l.zl.Sync() }

func toZapFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func hostname() string { h, _ := os.Hostname(); return h }
