// Package models defines the entity records of the cattery catalog and the
// snapshot aggregate that moves between storage tiers. All entities are plain
// JSON-shaped records identified by string IDs.
package models

import (
	"strings"
	"time"
)

// AnimalStatus is the sale state of an animal in the catalog.
type AnimalStatus string

const (
	AnimalAvailable AnimalStatus = "available"
	AnimalReserved  AnimalStatus = "reserved"
	AnimalSold      AnimalStatus = "sold"
)

// Animal is a single catalog entry. The wire field names match the snapshot
// document format, which predates this service.
type Animal struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Breed           string       `json:"breed"`
	Gender          string       `json:"gender"`
	Status          AnimalStatus `json:"status"`
	Color           string       `json:"color,omitempty"`
	Age             int          `json:"age,omitempty"`
	Price           int          `json:"price,omitempty"`
	Litter          string       `json:"litter,omitempty"`
	Parents         string       `json:"parents,omitempty"`
	Description     string       `json:"description,omitempty"`
	Characteristics []string     `json:"characteristics,omitempty"`
	Images          []string     `json:"images,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// MatchesBreed reports whether the animal belongs to the named breed.
// Matching is case-insensitive and substring-based in both directions, so
// "Devon" matches "Devon Rex" and the other way around. An animal without a
// breed value never matches.
func (a *Animal) MatchesBreed(name string) bool {
	if a.Breed == "" || name == "" {
		return false
	}
	stored := strings.ToLower(a.Breed)
	query := strings.ToLower(name)
	return strings.Contains(stored, query) || strings.Contains(query, stored)
}
