package models

import "time"

// SyncSnapshot is the full aggregate of every collection plus the time it
// was last synchronized. It is the unit of transfer for the remote document
// store: reads and writes always move the whole snapshot, never a delta.
type SyncSnapshot struct {
	Cats       []Animal             `json:"cats"`
	BreedPages map[string]BreedPage `json:"breedPages"`
	FAQ        []FAQEntry           `json:"faq"`
	Reviews    []Review             `json:"reviews"`
	Videos     []Video              `json:"videos"`
	Settings   Settings             `json:"settings"`
	LastSync   time.Time            `json:"lastSync"`
}

// EmptySnapshot returns a snapshot with every collection present but empty.
func EmptySnapshot() *SyncSnapshot {
	return &SyncSnapshot{
		Cats:       []Animal{},
		BreedPages: map[string]BreedPage{},
		FAQ:        []FAQEntry{},
		Reviews:    []Review{},
		Videos:     []Video{},
		Settings:   Settings{},
	}
}
