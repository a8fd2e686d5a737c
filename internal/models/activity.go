package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one row of the admin audit trail kept on the relational
// backend. UserName is joined in from the users table and may be empty when
// the account has since been removed.
type ActivityEntry struct {
	ID          int64      `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	UserName    string     `json:"user_name,omitempty"`
	Action      string     `json:"action"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Stats are the counters shown on the admin dashboard. The wire names keep
// the historical "cats" terminology of the snapshot format.
type Stats struct {
	TotalAnimals     int `json:"totalCats"`
	AvailableAnimals int `json:"availableCats"`
	ActiveFAQ        int `json:"totalQuestions"`
	ActiveReviews    int `json:"totalReviews"`
}
