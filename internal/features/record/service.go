package record

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"tablecrm/internal/cell"
	"tablecrm/internal/features/columns"
	"tablecrm/internal/features/live"
	"tablecrm/internal/fieldtype"
	"tablecrm/internal/table"
)

var ErrInvalidTable = errors.New("invalid table")

var amountCleaner = regexp.MustCompile(`[^0-9.\-]`)

// RecordService owns the CRUD lifecycle of the four record tables: payload
// coercion and defaults on the way in, ownership scoping in the store,
// change events out through the hub.
type RecordService interface {
	List(ctx context.Context, tableName string, userID int64) ([]map[string]any, error)
	View(ctx context.Context, tableName string, userID int64, query, sortParam string) ([]map[string]any, error)
	Get(ctx context.Context, tableName string, id, userID int64) (map[string]any, error)
	Create(ctx context.Context, tableName string, userID int64, data map[string]any) (map[string]any, error)
	Update(ctx context.Context, tableName string, id, userID int64, data map[string]any) (map[string]any, error)
	Delete(ctx context.Context, tableName string, id, userID int64) error
	Reorder(ctx context.Context, tableName string, fromID, toID, userID int64) error
	Batch(ctx context.Context, tableName string, userID int64, rows []map[string]any) (int, error)
	Count(ctx context.Context, tableName string, userID int64) (int64, error)
	CellEdit(ctx context.Context, tableName string, id, userID int64, key string) (cell.EditInput, error)
}

type RecordServiceImpl struct {
	Store         *Store
	ColumnService columns.ColumnService
	Hub           *live.Hub
	Logger        *zap.Logger
}

func NewRecordService(store *Store, columnService columns.ColumnService, hub *live.Hub, logger *zap.Logger) RecordService {
	return &RecordServiceImpl{
		Store:         store,
		ColumnService: columnService,
		Hub:           hub,
		Logger:        logger,
	}
}

func (s *RecordServiceImpl) List(ctx context.Context, tableName string, userID int64) ([]map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}
	return s.Store.List(ctx, tableName, userID)
}

// View returns the user's records filtered by a case-insensitive substring
// search over the table's searchable fields and sorted by the multi-key
// sort parameter ("name:asc,amount:desc"). With neither parameter set it
// is the same list List returns.
func (s *RecordServiceImpl) View(ctx context.Context, tableName string, userID int64, query, sortParam string) ([]map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}

	records, err := s.Store.List(ctx, tableName, userID)
	if err != nil {
		return nil, err
	}

	cfg, _ := table.Get(tableName)
	records = table.Search(records, query, cfg.SearchFields)

	if keys := table.ParseSortParam(sortParam); len(keys) > 0 {
		formats, err := s.formatIndex(ctx, tableName)
		if err != nil {
			s.Logger.Warn("sorting without column formats",
				zap.String("table", tableName), zap.Error(err))
		}
		table.Sort(records, keys, formats)
	}
	return records, nil
}

func (s *RecordServiceImpl) Get(ctx context.Context, tableName string, id, userID int64) (map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}
	return s.Store.Get(ctx, tableName, id, userID)
}

func (s *RecordServiceImpl) Create(ctx context.Context, tableName string, userID int64, data map[string]any) (map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}

	processed, err := table.ProcessData(tableName, data, true)
	if err != nil {
		return nil, err
	}

	created, err := s.Store.Create(ctx, tableName, userID, processed)
	if err != nil {
		return nil, err
	}

	s.Hub.Publish(live.Event{Action: "created", Table: tableName, ID: recordID(created)})
	s.Logger.Info("record created",
		zap.String("table", tableName),
		zap.Int64("userId", userID),
		zap.Int64("id", recordID(created)))
	return created, nil
}

func (s *RecordServiceImpl) Update(ctx context.Context, tableName string, id, userID int64, data map[string]any) (map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, ErrInvalidTable
	}

	processed, err := table.ProcessData(tableName, data, false)
	if err != nil {
		return nil, err
	}

	updated, err := s.Store.Update(ctx, tableName, id, userID, processed)
	if err != nil {
		return nil, err
	}

	s.Hub.Publish(live.Event{Action: "updated", Table: tableName, ID: id})
	return updated, nil
}

func (s *RecordServiceImpl) Delete(ctx context.Context, tableName string, id, userID int64) error {
	if !table.Valid(tableName) {
		return ErrInvalidTable
	}
	if err := s.Store.Delete(ctx, tableName, id, userID); err != nil {
		return err
	}

	s.Hub.Publish(live.Event{Action: "deleted", Table: tableName, ID: id})
	s.Logger.Info("record deleted",
		zap.String("table", tableName),
		zap.Int64("userId", userID),
		zap.Int64("id", id))
	return nil
}

func (s *RecordServiceImpl) Reorder(ctx context.Context, tableName string, fromID, toID, userID int64) error {
	if !table.Valid(tableName) {
		return ErrInvalidTable
	}
	if fromID == toID {
		return nil
	}
	if err := s.Store.SwapCreatedAt(ctx, tableName, fromID, toID, userID); err != nil {
		return err
	}

	s.Hub.Publish(live.Event{Action: "reordered", Table: tableName})
	return nil
}

// Batch coerces and inserts rows as one all-or-nothing unit. Finance
// amounts arriving as display strings ("$1,234.50") are stripped down to
// digits, dot and sign before the numeric coercion runs.
func (s *RecordServiceImpl) Batch(ctx context.Context, tableName string, userID int64, rows []map[string]any) (int, error) {
	if !table.Valid(tableName) {
		return 0, ErrInvalidTable
	}
	if len(rows) == 0 {
		return 0, nil
	}

	cfg, _ := table.Get(tableName)
	processed := make([]map[string]any, 0, len(rows))
	for i, row := range rows {
		for _, f := range cfg.NumberFields {
			if v, ok := row[f].(string); ok {
				row[f] = amountCleaner.ReplaceAllString(v, "")
			}
		}
		p, err := table.ProcessData(tableName, row, true)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		processed = append(processed, p)
	}

	created, err := s.Store.BatchCreate(ctx, tableName, userID, processed)
	if err != nil {
		return 0, err
	}

	s.Hub.Publish(live.Event{Action: "imported", Table: tableName})
	s.Logger.Info("batch created",
		zap.String("table", tableName),
		zap.Int64("userId", userID),
		zap.Int("count", created))
	return created, nil
}

func (s *RecordServiceImpl) Count(ctx context.Context, tableName string, userID int64) (int64, error) {
	if !table.Valid(tableName) {
		return 0, ErrInvalidTable
	}
	return s.Store.Count(ctx, tableName, userID)
}

// CellEdit builds the editing control for one cell of an owned record:
// widget kind, constraints and the current value ready for an input field.
func (s *RecordServiceImpl) CellEdit(ctx context.Context, tableName string, id, userID int64, key string) (cell.EditInput, error) {
	if !table.Valid(tableName) {
		return cell.EditInput{}, ErrInvalidTable
	}

	rec, err := s.Store.Get(ctx, tableName, id, userID)
	if err != nil {
		return cell.EditInput{}, err
	}

	formats, err := s.formatIndex(ctx, tableName)
	if err != nil {
		return cell.EditInput{}, err
	}
	cf, ok := formats[key]
	if !ok {
		return cell.EditInput{}, fmt.Errorf("unknown field %q", key)
	}
	return cell.Edit(cf, rec[key]), nil
}

func (s *RecordServiceImpl) formatIndex(ctx context.Context, tableName string) (map[string]fieldtype.ColumnFormat, error) {
	formats, err := s.ColumnService.Formats(ctx, tableName)
	if err != nil {
		return nil, err
	}
	index := make(map[string]fieldtype.ColumnFormat, len(formats))
	for _, cf := range formats {
		index[cf.Key] = cf
	}
	return index, nil
}

func recordID(rec map[string]any) int64 {
	switch v := rec["id"].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		var id int64
		fmt.Sscan(strings.TrimSpace(v), &id)
		return id
	default:
		return 0
	}
}
