package options

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tablecrm/internal/database"
	"tablecrm/internal/fieldtype"
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

func TestListOrdersBySortOrder(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT o.id, o.label, o.value, COALESCE`).
		WithArgs("tasks", "status").
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "value", "color"}).
			AddRow(2, "To Do", "To Do", "#6b7280").
			AddRow(1, "Done", "Done", "#22c55e"))

	opts, err := store.List(context.Background(), "tasks", "status")
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 2 || opts[0].Value != "To Do" || opts[1].Value != "Done" {
		t.Errorf("got %+v", opts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReplaceAllClearsThenInserts(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM field_options WHERE table_name`).
		WithArgs("leads", "status").
		WillReturnResult(sqlmock.NewResult(0, 3))
	// Existing option updates in place, keeping its id.
	mock.ExpectExec(`UPDATE options SET label`).
		WithArgs("New", "New", "#3b82f6", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO field_options`).
		WithArgs("leads", "status", int64(7), 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// New option inserts; empty value falls back to the label.
	mock.ExpectQuery(`INSERT INTO options`).
		WithArgs("Lost", "Lost", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectExec(`INSERT INTO field_options`).
		WithArgs("leads", "status", int64(8), 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := store.ReplaceAll(context.Background(), "leads", "status", []fieldtype.Option{
		{ID: 7, Label: "New", Value: "New", Color: "#3b82f6"},
		{Label: "Lost"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteOptionRemovesJoinRowsFirst(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM field_options WHERE option_id`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM options WHERE id`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.DeleteOption(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSeedSkipsExistingSets(t *testing.T) {
	store, mock := newMockStore(t)

	// Every seed set already has rows, so no writes happen.
	for range fieldtype.SeedSets() {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM field_options`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	}

	if err := store.Seed(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
