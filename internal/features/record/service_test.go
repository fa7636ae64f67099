package record

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"

	"tablecrm/internal/database"
	"tablecrm/internal/features/live"
	"tablecrm/internal/fieldtype"
)

type stubColumnService struct {
	formats []fieldtype.ColumnFormat
}

func (s *stubColumnService) Metadata(ctx context.Context, tableName string) ([]fieldtype.ColumnMeta, error) {
	return nil, nil
}

func (s *stubColumnService) Formats(ctx context.Context, tableName string) ([]fieldtype.ColumnFormat, error) {
	return s.formats, nil
}

func newTestService(t *testing.T) (RecordService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewStore(&database.PostgresDB{DB: db})
	hub := live.NewHub(zap.NewNop())
	return NewRecordService(store, &stubColumnService{}, hub, zap.NewNop()), mock
}

func TestBatchCleansDisplayAmounts(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	// "$1,234.50" reaches the store as the float 1234.5.
	mock.ExpectExec(`INSERT INTO "finances"`).
		WithArgs(int64(9), 1234.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := svc.Batch(context.Background(), "finances", 9, []map[string]any{
		{"amount": "$1,234.50"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created != 1 {
		t.Errorf("created = %d", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBatchRejectsUnparseableAmount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Batch(context.Background(), "finances", 9, []map[string]any{
		{"amount": "not a price"},
	})
	if err == nil {
		t.Fatal("expected numeric coercion failure")
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	svc, mock := newTestService(t)

	// Data columns are inserted in sorted key order: priority, status, title.
	mock.ExpectQuery(`INSERT INTO "tasks"`).
		WithArgs(int64(9), "Medium", "To Do", "Call Bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "status", "priority"}).
			AddRow(int64(1), int64(9), []byte("Call Bob"), []byte("To Do"), []byte("Medium")))

	created, err := svc.Create(context.Background(), "tasks", 9, map[string]any{"title": "Call Bob"})
	if err != nil {
		t.Fatal(err)
	}
	if created["status"] != "To Do" || created["priority"] != "Medium" {
		t.Errorf("defaults not applied: %v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReorderSameRecordIsNoOp(t *testing.T) {
	svc, mock := newTestService(t)

	if err := svc.Reorder(context.Background(), "tasks", 5, 5, 9); err != nil {
		t.Fatal(err)
	}
	// No SQL ran.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUnknownTableRejectedBeforeStorage(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.List(context.Background(), "payments", 1); err != ErrInvalidTable {
		t.Errorf("List: got %v", err)
	}
	if err := svc.Delete(context.Background(), "payments", 1, 1); err != ErrInvalidTable {
		t.Errorf("Delete: got %v", err)
	}
}
