package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"cattery/internal/models"
)

// ActivityStore records and reads the admin audit trail.
type ActivityStore struct {
	db *sql.DB
}

// NewActivityStore creates a new ActivityStore with the given database connection.
func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Log appends one entry to the audit trail.
func (s *ActivityStore) Log(userID uuid.UUID, action, description string) error {
	_, err := s.db.Exec(`
		INSERT INTO activity_log (user_id, action, description)
		VALUES ($1, $2, $3)
	`, userID, action, description)
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first, with the acting
// user's display name joined in where the account still exists.
func (s *ActivityStore) Recent(limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT a.id, a.user_id, COALESCE(u.display_name, ''), a.action, a.description, a.created_at
		FROM activity_log a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Action, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
