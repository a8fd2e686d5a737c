package models

import "time"

// BreedPage is the editable content of one breed landing page. Its ID is the
// breed slug; the set of known slugs is fixed and each one has built-in
// default content, so a lookup for a known breed never comes back empty.
type BreedPage struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	HeroDescription string    `json:"heroDescription"`
	Description     string    `json:"description"`
	Origin          string    `json:"origin,omitempty"`
	Weight          string    `json:"weight,omitempty"`
	Lifespan        string    `json:"lifespan,omitempty"`
	Temperament     string    `json:"temperament,omitempty"`
	Characteristics []string  `json:"characteristics,omitempty"`
	MainImage       string    `json:"mainImage,omitempty"`
	LastUpdated     time.Time `json:"lastUpdated"`
}
