package options

import (
	"context"
	"database/sql"
	"fmt"

	"tablecrm/internal/database"
	"tablecrm/internal/fieldtype"
)

// Store persists the option catalog: an options table of (label, value,
// color) rows plus a field_options join binding each option to a
// (table_name, column_name) pair with a sort_order.
type Store struct {
	db *sql.DB
}

func NewStore(pg *database.PostgresDB) *Store {
	return &Store{db: pg.DB}
}

// List returns the ordered option set for one column. Ties on sort_order
// break by insertion id.
func (s *Store) List(ctx context.Context, table, column string) ([]fieldtype.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.label, o.value, COALESCE(o.color, '')
		FROM field_options fo
		JOIN options o ON o.id = fo.option_id
		WHERE fo.table_name = $1 AND fo.column_name = $2
		ORDER BY fo.sort_order, fo.id`,
		table, column)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	var opts []fieldtype.Option
	for rows.Next() {
		var o fieldtype.Option
		if err := rows.Scan(&o.ID, &o.Label, &o.Value, &o.Color); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// ListForTable returns every registered option set of one table keyed by
// column name, so a columns fetch costs one query instead of one per column.
func (s *Store) ListForTable(ctx context.Context, table string) (map[string][]fieldtype.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fo.column_name, o.id, o.label, o.value, COALESCE(o.color, '')
		FROM field_options fo
		JOIN options o ON o.id = fo.option_id
		WHERE fo.table_name = $1
		ORDER BY fo.column_name, fo.sort_order, fo.id`,
		table)
	if err != nil {
		return nil, fmt.Errorf("list table options: %w", err)
	}
	defer rows.Close()

	sets := make(map[string][]fieldtype.Option)
	for rows.Next() {
		var column string
		var o fieldtype.Option
		if err := rows.Scan(&column, &o.ID, &o.Label, &o.Value, &o.Color); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		sets[column] = append(sets[column], o)
	}
	return sets, rows.Err()
}

// ReplaceAll swaps a column's option set for the given list in one
// transaction. Options with an id update in place, the rest are inserted;
// sort_order is the list position.
func (s *Store) ReplaceAll(ctx context.Context, table, column string, opts []fieldtype.Option) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM field_options WHERE table_name = $1 AND column_name = $2`,
		table, column); err != nil {
		return fmt.Errorf("clear field options: %w", err)
	}

	for i, o := range opts {
		value := o.Value
		if value == "" {
			value = o.Label
		}

		id := o.ID
		if id > 0 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE options SET label = $1, value = $2, color = NULLIF($3, '') WHERE id = $4`,
				o.Label, value, o.Color, id); err != nil {
				return fmt.Errorf("update option %d: %w", id, err)
			}
		} else {
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO options (label, value, color) VALUES ($1, $2, NULLIF($3, '')) RETURNING id`,
				o.Label, value, o.Color).Scan(&id); err != nil {
				return fmt.Errorf("insert option: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO field_options (table_name, column_name, option_id, sort_order) VALUES ($1, $2, $3, $4)`,
			table, column, id, i); err != nil {
			return fmt.Errorf("insert field option: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteOption removes one option everywhere. Join rows go first to honor
// the foreign key.
func (s *Store) DeleteOption(ctx context.Context, optionID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM field_options WHERE option_id = $1`, optionID); err != nil {
		return fmt.Errorf("delete field options: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM options WHERE id = $1`, optionID); err != nil {
		return fmt.Errorf("delete option: %w", err)
	}

	return tx.Commit()
}

// Seed installs the stock status/priority catalogs for any (table, column)
// pair that has no registered options yet. Existing sets are never touched.
func (s *Store) Seed(ctx context.Context) error {
	for _, set := range fieldtype.SeedSets() {
		var n int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM field_options WHERE table_name = $1 AND column_name = $2`,
			set.Table, set.Column).Scan(&n); err != nil {
			return fmt.Errorf("count seeds for %s.%s: %w", set.Table, set.Column, err)
		}
		if n > 0 {
			continue
		}
		if err := s.ReplaceAll(ctx, set.Table, set.Column, set.Options); err != nil {
			return fmt.Errorf("seed %s.%s: %w", set.Table, set.Column, err)
		}
	}
	return nil
}
