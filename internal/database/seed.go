package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"cattery/internal/models"
)

// Seed populates the database with the default admin account, the default
// site settings and the built-in breed pages. Existing rows are left alone,
// so running it repeatedly is harmless.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO users (username, password_hash, display_name, role)
			VALUES ($1, $2, $3, $4)
		`, "admin", string(hash), "Administrator", "admin")
		if err != nil {
			return fmt.Errorf("seed insert admin: %w", err)
		}
		slog.Info("database seeded with default admin user", "username", "admin")
	}

	for key, value := range models.DefaultSettings() {
		_, err := db.Exec(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, key, value)
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	for id, page := range models.DefaultBreedPages() {
		characteristics, err := json.Marshal(page.Characteristics)
		if err != nil {
			return fmt.Errorf("seed breed page %s: %w", id, err)
		}
		_, err = db.Exec(`
			INSERT INTO breed_pages (id, title, hero_description, description, origin,
			                         weight, lifespan, temperament, characteristics, main_image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING
		`, id, page.Title, page.HeroDescription, page.Description, page.Origin,
			page.Weight, page.Lifespan, page.Temperament, characteristics, page.MainImage)
		if err != nil {
			return fmt.Errorf("seed breed page %s: %w", id, err)
		}
	}

	return nil
}
