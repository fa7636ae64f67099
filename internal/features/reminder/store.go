package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tablecrm/internal/database"
)

// DueTask is a task whose due date has arrived, joined with its owner's
// address so the reminder can be delivered.
type DueTask struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	DueDate    time.Time `json:"dueDate"`
	UserID     int64     `json:"userId"`
	OwnerEmail string    `json:"-"`
}

type Store struct {
	db *sql.DB
}

func NewStore(pg *database.PostgresDB) *Store {
	return &Store{db: pg.DB}
}

// DueToday returns unfinished tasks due today or earlier, across all users.
func (s *Store) DueToday(ctx context.Context) ([]DueTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.title, COALESCE(t.status, ''), t.due_date, t.user_id, u.email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.due_date IS NOT NULL
		  AND t.due_date::date <= CURRENT_DATE
		  AND COALESCE(t.status, '') <> 'Done'
		ORDER BY t.user_id, t.due_date`)
	if err != nil {
		return nil, fmt.Errorf("query due tasks: %w", err)
	}
	defer rows.Close()

	var tasks []DueTask
	for rows.Next() {
		var t DueTask
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.DueDate, &t.UserID, &t.OwnerEmail); err != nil {
			return nil, fmt.Errorf("scan due task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
