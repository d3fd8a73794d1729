package logger

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap/zapcore"
)

// forwardCore ships log entries to New Relic as log events
type forwardCore struct {
	zapcore.LevelEnabler
	app     *newrelic.Application
	service string
	context []zapcore.Field
}

func newForwardCore(level zapcore.LevelEnabler, app *newrelic.Application, service string) *forwardCore {
	return &forwardCore{LevelEnabler: level, app: app, service: service}
}

func (c *forwardCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.context = append(append([]zapcore.Field{}, c.context...), fields...)
	return &clone
}

func (c *forwardCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return checked
	}
	return checked.AddCore(entry, c)
}

func (c *forwardCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.context {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	enc.Fields["service"] = c.service
	enc.Fields["caller"] = entry.Caller.TrimmedPath()
	if entry.Stack != "" {
		enc.Fields["stacktrace"] = entry.Stack
	}

	c.app.RecordLog(newrelic.LogData{
		Timestamp:  entry.Time.UnixMilli(),
		Severity:   entry.Level.String(),
		Message:    entry.Message,
		Attributes: enc.Fields,
	})
	return nil
}

func (c *forwardCore) Sync() error { return nil }
