package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore tees every log entry to the async Mongo writer while still writing
// to the wrapped console/JSON core.
type DBCore struct {
	zapcore.Core
	writer *DBLogWriter
}

func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter) zapcore.Core {
	return &DBCore{
		Core:   baseCore,
		writer: writer,
	}
}

func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	var ip, tableName string
	var userID *int64

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
		switch f.Key {
		case "ip":
			ip = f.String
		case "table":
			tableName = f.String
		case "userId":
			id := f.Integer
			userID = &id
		}
	}

	c.writer.AddLog(LogEntry{
		Level:     entry.Level,
		Message:   entry.Message,
		IpAddress: ip,
		Table:     tableName,
		UserID:    userID,
		Caller:    entry.Caller.Function,
	})

	return c.Core.Write(entry, fields)
}

func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
