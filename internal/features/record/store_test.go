package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tablecrm/internal/database"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(&database.PostgresDB{DB: db}), mock
}

func TestListScopesToOwnerNewestFirst(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "last_contact"}).
			AddRow(int64(2), int64(9), []byte("Beta Corp"), nil).
			AddRow(int64(1), int64(9), []byte("Acme"), nil))

	records, err := store.List(context.Background(), "customers", 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	// Storage columns come back as camelCase keys, byte slices as strings.
	if records[0]["name"] != "Beta Corp" {
		t.Errorf("name = %v", records[0]["name"])
	}
	if _, ok := records[0]["lastContact"]; !ok {
		t.Error("last_contact not mapped to lastContact")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListRejectsUnknownTable(t *testing.T) {
	store, _ := newMockStore(t)
	if _, err := store.List(context.Background(), "users; DROP TABLE users", 1); err == nil {
		t.Fatal("expected error for unknown table")
	}
}

func TestUpdateForeignRecordIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	// The row exists but belongs to another user, so zero rows return.
	mock.ExpectQuery(`UPDATE "leads" SET updated_at = NOW\(\), "status" = \$1 WHERE id = \$2 AND user_id = \$3 RETURNING \*`).
		WithArgs("Contacted", int64(4), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Update(context.Background(), "leads", 4, 7, map[string]any{"status": "Contacted"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteForeignRecordIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), "tasks", 3, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateRefusesProtectedColumns(t *testing.T) {
	store, _ := newMockStore(t)

	for _, key := range []string{"userId", "name; --"} {
		if _, err := store.Create(context.Background(), "leads", 1, map[string]any{key: "x"}); err == nil {
			t.Errorf("key %q: expected rejection", key)
		}
	}
}

func TestUpdateIgnoresEchoedAuditFields(t *testing.T) {
	store, mock := newMockStore(t)

	// A client echoing the full record back only writes the real field.
	mock.ExpectQuery(`UPDATE "leads" SET updated_at = NOW\(\), "name" = \$1 WHERE id = \$2 AND user_id = \$3 RETURNING \*`).
		WithArgs("Ada", int64(4), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(int64(4), int64(7), []byte("Ada")))

	_, err := store.Update(context.Background(), "leads", 4, 7, map[string]any{
		"id":        4,
		"name":      "Ada",
		"createdAt": "2026-01-01T00:00:00Z",
		"updatedAt": "2026-01-02T00:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSwapCreatedAtExchangesTimestamps(t *testing.T) {
	store, mock := newMockStore(t)

	fromCreated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	toCreated := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT created_at FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(fromCreated))
	mock.ExpectQuery(`SELECT created_at FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(2), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(toCreated))
	// Each row receives the other's timestamp.
	mock.ExpectExec(`UPDATE "tasks" SET created_at = \$1 WHERE id = \$2`).
		WithArgs(toCreated, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET created_at = \$1 WHERE id = \$2`).
		WithArgs(fromCreated, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.SwapCreatedAt(context.Background(), "tasks", 1, 2, 9); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSwapCreatedAtForeignRowRollsBack(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT created_at FROM "tasks" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(1), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))
	mock.ExpectRollback()

	err := store.SwapCreatedAt(context.Background(), "tasks", 1, 2, 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBatchCreateRollsBackOnBadRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "finances"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "finances"`).
		WillReturnError(errors.New("null value in column"))
	mock.ExpectRollback()

	_, err := store.BatchCreate(context.Background(), "finances", 9, []map[string]any{
		{"description": "rent", "amount": 1200.0},
		{"description": nil},
	})
	if err == nil {
		t.Fatal("expected batch to fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCountScopesToOwner(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "leads" WHERE user_id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := store.Count(context.Background(), "leads", 9)
	if err != nil {
		t.Fatal(err)
	}
	if n != 12 {
		t.Errorf("count = %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
