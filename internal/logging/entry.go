package logging

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// RequestIDKey is the field name request loggers attach to every entry.
const RequestIDKey = "request_id"

// Entry is a captured log entry.
type Entry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Logger    string         `json:"logger,omitempty"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func newEntry(ent zapcore.Entry, fields []zapcore.Field) Entry {
	e := Entry{
		Time:    ent.Time,
		Level:   ent.Level.String(),
		Logger:  ent.LoggerName,
		Message: ent.Message,
	}
	if len(fields) == 0 {
		return e
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	if id, ok := enc.Fields[RequestIDKey].(string); ok {
		e.RequestID = id
		delete(enc.Fields, RequestIDKey)
	}
	if len(enc.Fields) > 0 {
		e.Fields = enc.Fields
	}
	return e
}
