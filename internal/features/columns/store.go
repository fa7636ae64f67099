package columns

import (
	"context"
	"database/sql"
	"fmt"

	"tablecrm/internal/database"
	"tablecrm/internal/fieldtype"
)

// Store reads raw column metadata for the record tables out of
// information_schema. The id and ownership columns are internal and never
// surfaced.
type Store struct {
	db *sql.DB
}

func NewStore(pg *database.PostgresDB) *Store {
	return &Store{db: pg.DB}
}

func (s *Store) Scan(ctx context.Context, tableName string) ([]fieldtype.ColumnMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT column_name, data_type, udt_name
		FROM information_schema.columns
		WHERE table_schema = 'public'
		  AND table_name = $1
		  AND column_name NOT IN ('id', 'user_id')
		ORDER BY ordinal_position`,
		tableName)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var metas []fieldtype.ColumnMeta
	for rows.Next() {
		var m fieldtype.ColumnMeta
		if err := rows.Scan(&m.ColumnName, &m.DataType, &m.UDTName); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return metas, nil
}
