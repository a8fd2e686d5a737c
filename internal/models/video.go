package models

import "time"

// Video is an embedded video shown on the site, grouped by category
// ("main" for the homepage reel) and ordered within the group.
type Video struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  string    `json:"category,omitempty"`
	Order     int       `json:"order,omitempty"`
	Active    bool      `json:"active"`
	Autoplay  bool      `json:"autoplay"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayOrder returns the sort key for the video within its category.
func (v *Video) DisplayOrder() int {
	if v.Order <= 0 {
		return 999
	}
	return v.Order
}
