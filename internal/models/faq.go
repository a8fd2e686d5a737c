package models

import "time"

// FAQEntry is one question/answer pair shown on the FAQ page.
type FAQEntry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category,omitempty"`
	Order     int       `json:"order,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayOrder returns the sort key for the entry. Entries without an
// explicit order sink to the bottom of the list.
func (f *FAQEntry) DisplayOrder() int {
	if f.Order <= 0 {
		return 999
	}
	return f.Order
}
