package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// sensitiveKeys are field names whose values never reach a log sink
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"new_password":  {},
	"password_hash": {},
	"otp":           {},
	"code":          {},
	"token":         {},
	"reset_token":   {},
	"access_token":  {},
	"authorization": {},
	"client_secret": {},
}

// redactCore masks sensitive fields before handing entries to the wrapped core
type redactCore struct {
	zapcore.Core
}

func newRedactCore(core zapcore.Core) zapcore.Core {
	return &redactCore{Core: core}
}

func (c *redactCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactCore{Core: c.Core.With(redactFields(fields))}
}

func (c *redactCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *redactCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, redactFields(fields))
}

func redactFields(fields []zapcore.Field) []zapcore.Field {
	var out []zapcore.Field
	for i, field := range fields {
		if !isSensitive(field.Key) {
			continue
		}
		if out == nil {
			out = append([]zapcore.Field{}, fields...)
		}
		out[i] = zap.String(field.Key, redacted)
	}
	if out == nil {
		return fields
	}
	return out
}

func isSensitive(key string) bool {
	key = strings.ToLower(strings.ReplaceAll(key, "-", "_"))
	_, ok := sensitiveKeys[key]
	return ok
}
