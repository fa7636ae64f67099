package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"tablecrm/internal/database"
	"tablecrm/internal/fieldtype"
	"tablecrm/internal/table"
)

// ErrNotFound covers both a missing record and a record owned by another
// user; the two are indistinguishable on purpose.
var ErrNotFound = errors.New("record not found")

var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Store runs the generic SQL CRUD for the whitelisted record tables. Table
// names are only ever interpolated after a table.Valid check, and column
// names are derived from record keys and pattern-checked before quoting.
type Store struct {
	db *sql.DB
}

func NewStore(pg *database.PostgresDB) *Store {
	return &Store{db: pg.DB}
}

// List returns every record owned by userID, newest creation first — the
// ordering the drag-reorder swap manipulates.
func (s *Store) List(ctx context.Context, tableName string, userID int64) ([]map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, fmt.Errorf("unknown table %q", tableName)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT * FROM %s WHERE user_id = $1 ORDER BY created_at DESC`, pq.QuoteIdentifier(tableName)),
		userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", tableName, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Store) Get(ctx context.Context, tableName string, id, userID int64) (map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, fmt.Errorf("unknown table %q", tableName)
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 AND user_id = $2`, pq.QuoteIdentifier(tableName)),
		id, userID)
	if err != nil {
		return nil, fmt.Errorf("get %s/%d: %w", tableName, id, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Create inserts one record for userID and returns the stored row,
// including the DB-assigned id and audit timestamps.
func (s *Store) Create(ctx context.Context, tableName string, userID int64, data map[string]any) (map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, fmt.Errorf("unknown table %q", tableName)
	}

	cols := []string{"user_id"}
	args := []any{userID}
	for _, key := range sortedKeys(data) {
		col, err := dbColumn(key)
		if err != nil {
			return nil, err
		}
		cols = append(cols, pq.QuoteIdentifier(col))
		args = append(args, data[key])
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		pq.QuoteIdentifier(tableName),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tableName, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("create %s: no row returned", tableName)
	}
	return records[0], nil
}

// Update applies a partial update to a record the caller owns. A record
// belonging to someone else reports ErrNotFound, never its contents.
func (s *Store) Update(ctx context.Context, tableName string, id, userID int64, data map[string]any) (map[string]any, error) {
	if !table.Valid(tableName) {
		return nil, fmt.Errorf("unknown table %q", tableName)
	}
	if len(data) == 0 {
		return s.Get(ctx, tableName, id, userID)
	}

	sets := []string{"updated_at = NOW()"}
	args := []any{}
	for _, key := range sortedKeys(data) {
		col, err := dbColumn(key)
		if err != nil {
			return nil, err
		}
		args = append(args, data[key])
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), len(args)))
	}
	args = append(args, id, userID)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d AND user_id = $%d RETURNING *`,
		pq.QuoteIdentifier(tableName),
		strings.Join(sets, ", "),
		len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s/%d: %w", tableName, id, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

func (s *Store) Delete(ctx context.Context, tableName string, id, userID int64) error {
	if !table.Valid(tableName) {
		return fmt.Errorf("unknown table %q", tableName)
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, pq.QuoteIdentifier(tableName)),
		id, userID)
	if err != nil {
		return fmt.Errorf("delete %s/%d: %w", tableName, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SwapCreatedAt exchanges the created_at values of two owned records in one
// transaction, which is how drag-reorder moves a row: visual order is
// created_at descending and no separate ordinal column exists.
func (s *Store) SwapCreatedAt(ctx context.Context, tableName string, fromID, toID, userID int64) error {
	if !table.Valid(tableName) {
		return fmt.Errorf("unknown table %q", tableName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	quoted := pq.QuoteIdentifier(tableName)

	var fromCreated, toCreated time.Time
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT created_at FROM %s WHERE id = $1 AND user_id = $2`, quoted),
		fromID, userID).Scan(&fromCreated)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load from row: %w", err)
	}
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT created_at FROM %s WHERE id = $1 AND user_id = $2`, quoted),
		toID, userID).Scan(&toCreated)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load to row: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET created_at = $1 WHERE id = $2`, quoted),
		toCreated, fromID); err != nil {
		return fmt.Errorf("swap from row: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET created_at = $1 WHERE id = $2`, quoted),
		fromCreated, toID); err != nil {
		return fmt.Errorf("swap to row: %w", err)
	}

	return tx.Commit()
}

// BatchCreate inserts the rows in one transaction: either the whole batch
// lands or none of it does.
func (s *Store) BatchCreate(ctx context.Context, tableName string, userID int64, records []map[string]any) (int, error) {
	if !table.Valid(tableName) {
		return 0, fmt.Errorf("unknown table %q", tableName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	created := 0
	for i, data := range records {
		cols := []string{"user_id"}
		args := []any{userID}
		for _, key := range sortedKeys(data) {
			col, err := dbColumn(key)
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", i+1, err)
			}
			cols = append(cols, pq.QuoteIdentifier(col))
			args = append(args, data[key])
		}
		placeholders := make([]string, len(args))
		for j := range args {
			placeholders[j] = fmt.Sprintf("$%d", j+1)
		}
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			pq.QuoteIdentifier(tableName),
			strings.Join(cols, ", "),
			strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		created++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

func (s *Store) Count(ctx context.Context, tableName string, userID int64) (int64, error) {
	if !table.Valid(tableName) {
		return 0, fmt.Errorf("unknown table %q", tableName)
	}
	var n int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, pq.QuoteIdentifier(tableName)),
		userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", tableName, err)
	}
	return n, nil
}

// sortedKeys fixes the column order so generated statements are stable.
// Read-only audit fields are dropped here: clients commonly echo the whole
// record back on update, and created_at/updated_at are server-managed.
func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		switch k {
		case "id", "createdAt", "updatedAt":
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dbColumn maps a record key to its storage column, refusing anything that
// is not a plain identifier or that callers must not write directly.
func dbColumn(key string) (string, error) {
	col := fieldtype.ToDBColumn(key)
	if !columnPattern.MatchString(col) {
		return "", fmt.Errorf("invalid field %q", key)
	}
	switch col {
	case "id", "user_id", "created_at", "updated_at":
		return "", fmt.Errorf("field %q is not writable", key)
	}
	return col, nil
}

// scanRecords reads a result set into camelCase-keyed record maps.
func scanRecords(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			rec[fieldtype.CamelKey(col)] = normalizeValue(values[i])
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// normalizeValue unwraps driver types so records serialize cleanly.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	default:
		return v
	}
}
