package logger

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"

	"tablecrm/internal/config"
	"tablecrm/internal/database"
)

// LogEntry holds the data passed from zap to the background worker.
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	IpAddress string
	Table     string
	UserID    *int64
	Caller    string
}

// logRecord is the persisted shape in the logs collection.
type logRecord struct {
	Message      string    `bson:"message"`
	IpAddress    string    `bson:"ip_address,omitempty"`
	Table        string    `bson:"table,omitempty"`
	UserID       int64     `bson:"user_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	Caller       string    `bson:"caller,omitempty"`
	AppId        string    `bson:"app_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// DBLogWriter drains log entries into Mongo off the request path.
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog never blocks the caller; a full channel drops the entry.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		var userID int64
		if entry.UserID != nil {
			userID = *entry.UserID
		}

		rec := logRecord{
			Message:      entry.Message,
			IpAddress:    entry.IpAddress,
			Table:        entry.Table,
			UserID:       userID,
			LogLevelId:   mapLevelToInt(entry.Level),
			Caller:       entry.Caller,
			AppId:        w.appId,
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert errors are swallowed so logging can never take the API down.
		w.db.Collection("logs").InsertOne(context.Background(), rec)
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
