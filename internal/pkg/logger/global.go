package logger

import (
	"context"
	"sync"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/estamp/internal/pkg/requestcontext"
	"go.uber.org/zap"
)

var (
	globalLogger *ZapLogger
	once         sync.Once
	mu           sync.RWMutex
)

// SetGlobalLogger sets the process-wide logger. Call once during startup.
func SetGlobalLogger(logger *ZapLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process-wide logger, falling back to a production default
func GetGlobalLogger() *ZapLogger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {
		if globalLogger != nil {
			return
		}
		defaultLogger, err := zap.NewProduction()
		if err != nil {
			defaultLogger = zap.NewNop()
		}
		globalLogger = &ZapLogger{Logger: defaultLogger}
	})
	return globalLogger
}

func Info(msg string, fields ...Field) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Debug(msg string, fields ...Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Error(msg string, fields ...Field) {
	GetGlobalLogger().Error(msg, fields...)
}

func Fatal(msg string, fields ...Field) {
	GetGlobalLogger().Fatal(msg, fields...)
}

// withContext tags entries with the request id and, when ctx carries a
// New Relic transaction, its trace ids
func withContext(ctx context.Context) *zap.Logger {
	l := GetGlobalLogger()
	log := l.WithNewRelicContext(newrelic.FromContext(ctx))
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	return log
}

// InfoCtx logs with request and trace correlation taken from ctx
func InfoCtx(ctx context.Context, msg string, fields ...Field) {
	withContext(ctx).Info(msg, fields...)
}

// WarnCtx is InfoCtx at warn level
func WarnCtx(ctx context.Context, msg string, fields ...Field) {
	withContext(ctx).Warn(msg, fields...)
}

// ErrorCtx is InfoCtx at error level
func ErrorCtx(ctx context.Context, msg string, fields ...Field) {
	withContext(ctx).Error(msg, fields...)
}
