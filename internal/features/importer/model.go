package importer

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tablecrm/internal/fieldtype"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job journals one import run. The insert itself is transactional in
// Postgres; the journal records what was attempted and how it ended.
type Job struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      int64              `json:"userId" bson:"user_id"`
	TableName   string             `json:"table" bson:"table_name"`
	FileName    string             `json:"fileName" bson:"file_name"`
	Status      JobStatus          `json:"status" bson:"status"`
	TotalRows   int                `json:"totalRows" bson:"total_rows"`
	Created     int                `json:"created" bson:"created"`
	Mapping     map[string]string  `json:"mapping" bson:"mapping"`
	Error       string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
}

// Preview is what the mapping UI needs before committing an import: the
// file's headers, a few sample rows, the row count and the target table's
// column formats to map against.
type Preview struct {
	Headers    []string                 `json:"headers"`
	SampleRows []map[string]string      `json:"sampleRows"`
	TotalRows  int                      `json:"totalRows"`
	Formats    []fieldtype.ColumnFormat `json:"formats"`
}
