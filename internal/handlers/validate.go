package handlers

import (
	"strings"
	"unicode/utf8"

	"cattery/internal/models"
)

// Validation limits for catalog fields.
const (
	maxNameLen        = 200
	maxTextLen        = 5_000
	maxDescriptionLen = 20_000
	maxURLLen         = 2_000
)

// validateAnimal checks animal inputs and returns the first error found.
func validateAnimal(a *models.Animal) string {
	if strings.TrimSpace(a.Name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(a.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(a.Breed) == "" {
		return "Breed is required."
	}
	if strings.TrimSpace(a.Gender) == "" {
		return "Gender is required."
	}
	switch a.Status {
	case models.AnimalAvailable, models.AnimalReserved, models.AnimalSold:
	default:
		return "Status must be available, reserved or sold."
	}
	if utf8.RuneCountInString(a.Description) > maxDescriptionLen {
		return "Description is too long (max 20,000 characters)."
	}
	return ""
}

// validateBreedPage checks breed page inputs and returns the first error found.
func validateBreedPage(p *models.BreedPage) string {
	if strings.TrimSpace(p.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(p.Title) > maxNameLen {
		return "Title is too long (max 200 characters)."
	}
	if strings.TrimSpace(p.Description) == "" {
		return "Description is required."
	}
	if utf8.RuneCountInString(p.Description) > maxDescriptionLen {
		return "Description is too long (max 20,000 characters)."
	}
	return ""
}

// validateFAQ checks FAQ inputs and returns the first error found.
func validateFAQ(f *models.FAQEntry) string {
	if strings.TrimSpace(f.Question) == "" {
		return "Question is required."
	}
	if strings.TrimSpace(f.Answer) == "" {
		return "Answer is required."
	}
	if utf8.RuneCountInString(f.Answer) > maxTextLen {
		return "Answer is too long (max 5,000 characters)."
	}
	return ""
}

// validateReview checks review inputs and returns the first error found.
func validateReview(r *models.Review) string {
	if strings.TrimSpace(r.Author) == "" {
		return "Author is required."
	}
	if strings.TrimSpace(r.Text) == "" {
		return "Review text is required."
	}
	if utf8.RuneCountInString(r.Text) > maxTextLen {
		return "Review text is too long (max 5,000 characters)."
	}
	if r.Rating < 1 || r.Rating > 5 {
		return "Rating must be between 1 and 5."
	}
	return ""
}

// validateVideo checks video inputs and returns the first error found.
func validateVideo(v *models.Video) string {
	if strings.TrimSpace(v.Title) == "" {
		return "Title is required."
	}
	if strings.TrimSpace(v.URL) == "" {
		return "URL is required."
	}
	if utf8.RuneCountInString(v.URL) > maxURLLen {
		return "URL is too long (max 2,000 characters)."
	}
	return ""
}
