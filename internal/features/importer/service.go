package importer

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"tablecrm/internal/features/columns"
	"tablecrm/internal/features/record"
	"tablecrm/internal/table"
)

var ErrInvalidTable = errors.New("invalid table")

const sampleRowLimit = 5

// ImportService turns uploaded CSV/XLSX files into record batches. Preview
// parses without writing; Import maps file headers to record keys and
// commits the whole batch in one transaction, journaling the run either way.
type ImportService interface {
	Preview(ctx context.Context, file io.Reader, filename, tableName string) (*Preview, error)
	Import(ctx context.Context, file io.Reader, filename, tableName string, mapping map[string]string, userID int64) (*Job, error)
	Jobs(ctx context.Context, userID int64) ([]Job, error)
}

type ImportServiceImpl struct {
	JobRepo       JobRepository
	RecordService record.RecordService
	ColumnService columns.ColumnService
	Logger        *zap.Logger
}

func NewImportService(jobs JobRepository, recordService record.RecordService, columnService columns.ColumnService, logger *zap.Logger) ImportService {
	return &ImportServiceImpl{
		JobRepo:       jobs,
		RecordService: recordService,
		ColumnService: columnService,
		Logger:        logger,
	}
}

func (s *ImportServiceImpl) Preview(ctx context.Context, file io.Reader, filename, tableName string) (*Preview, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}

	parsed, err := Parse(file, filename)
	if err != nil {
		return nil, err
	}

	formats, err := s.ColumnService.Formats(ctx, tableName)
	if err != nil {
		return nil, err
	}

	samples := make([]map[string]string, 0, sampleRowLimit)
	for i, row := range parsed.Rows {
		if i == sampleRowLimit {
			break
		}
		sample := make(map[string]string, len(parsed.Headers))
		for j, header := range parsed.Headers {
			sample[header] = row[j]
		}
		samples = append(samples, sample)
	}

	return &Preview{
		Headers:    parsed.Headers,
		SampleRows: samples,
		TotalRows:  len(parsed.Rows),
		Formats:    formats,
	}, nil
}

func (s *ImportServiceImpl) Import(ctx context.Context, file io.Reader, filename, tableName string, mapping map[string]string, userID int64) (*Job, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}

	parsed, err := Parse(file, filename)
	if err != nil {
		return nil, err
	}

	rows := MapRows(parsed, mapping)

	job := &Job{
		UserID:    userID,
		TableName: tableName,
		FileName:  filename,
		TotalRows: len(parsed.Rows),
		Mapping:   mapping,
	}
	if err := s.JobRepo.Create(ctx, job); err != nil {
		// The journal is advisory; a write failure must not block the import.
		s.Logger.Warn("import job journal write failed", zap.Error(err))
	}

	created, err := s.RecordService.Batch(ctx, tableName, userID, rows)
	if err != nil {
		if !job.ID.IsZero() {
			if ferr := s.JobRepo.Fail(ctx, job.ID, err.Error()); ferr != nil {
				s.Logger.Warn("import job journal update failed", zap.Error(ferr))
			}
		}
		return nil, err
	}

	job.Status = JobStatusCompleted
	job.Created = created
	if !job.ID.IsZero() {
		if cerr := s.JobRepo.Complete(ctx, job.ID, created); cerr != nil {
			s.Logger.Warn("import job journal update failed", zap.Error(cerr))
		}
	}

	s.Logger.Info("import completed",
		zap.String("table", tableName),
		zap.Int64("userId", userID),
		zap.String("file", filename),
		zap.Int("created", created))
	return job, nil
}

func (s *ImportServiceImpl) Jobs(ctx context.Context, userID int64) ([]Job, error) {
	return s.JobRepo.FindByUser(ctx, userID, 50)
}

// MapRows applies the header-to-field mapping: a file column mapped to ""
// or missing from the mapping is dropped, empty cells are omitted, and
// rows that map to nothing disappear entirely.
func MapRows(parsed *ParsedFile, mapping map[string]string) []map[string]any {
	var out []map[string]any
	for _, row := range parsed.Rows {
		rec := make(map[string]any)
		for i, header := range parsed.Headers {
			key := mapping[header]
			if key == "" || row[i] == "" {
				continue
			}
			rec[key] = row[i]
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}
