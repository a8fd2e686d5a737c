package models

import "time"

// Review is a customer review. Date is the day the review was given, in
// YYYY-MM-DD form; sorting falls back to CreatedAt when it is absent or
// unparseable.
type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	City      string    `json:"city,omitempty"`
	Date      string    `json:"date,omitempty"`
	Image     string    `json:"image,omitempty"`
	Featured  bool      `json:"featured"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GivenAt returns the review date as a time, falling back to CreatedAt.
func (r *Review) GivenAt() time.Time {
	if r.Date != "" {
		if t, err := time.Parse("2006-01-02", r.Date); err == nil {
			return t
		}
	}
	return r.CreatedAt
}
