package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cattery/internal/models"
)

// SnapshotStore reads and writes the whole catalog snapshot against the
// relational tables. It satisfies the catalog coordinator's persister
// contract: the snapshot is the unit of exchange, never single rows.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore creates a new SnapshotStore with the given database connection.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// LoadSnapshot assembles a snapshot from all content tables. The reported
// LastSync is the newest updated_at across the tables, so a freshly
// migrated empty database yields a zero LastSync and never wins a
// staleness comparison.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*models.SyncSnapshot, error) {
	snap := models.EmptySnapshot()
	var newest time.Time

	animals, t, err := s.loadAnimals(ctx)
	if err != nil {
		return nil, err
	}
	snap.Cats = animals
	newest = later(newest, t)

	pages, t, err := s.loadBreedPages(ctx)
	if err != nil {
		return nil, err
	}
	snap.BreedPages = pages
	newest = later(newest, t)

	faq, t, err := s.loadFAQ(ctx)
	if err != nil {
		return nil, err
	}
	snap.FAQ = faq
	newest = later(newest, t)

	reviews, t, err := s.loadReviews(ctx)
	if err != nil {
		return nil, err
	}
	snap.Reviews = reviews
	newest = later(newest, t)

	videos, t, err := s.loadVideos(ctx)
	if err != nil {
		return nil, err
	}
	snap.Videos = videos
	newest = later(newest, t)

	settings, t, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	snap.Settings = settings
	newest = later(newest, t)

	snap.LastSync = newest
	return snap, nil
}

// SaveSnapshot replaces the content tables with the snapshot's collections
// in a single transaction. Users and the activity log are untouched.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap *models.SyncSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot save begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"animals", "breed_pages", "faq", "reviews", "videos", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("snapshot clear %s: %w", table, err)
		}
	}

	for _, a := range snap.Cats {
		characteristics, images, err := jsonCols(a.Characteristics, a.Images)
		if err != nil {
			return fmt.Errorf("snapshot animal %s: %w", a.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO animals (id, name, breed, gender, status, color, age, price,
			                     litter, parents, description, characteristics, images,
			                     created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, a.ID, a.Name, a.Breed, a.Gender, a.Status, a.Color, a.Age, a.Price,
			a.Litter, a.Parents, a.Description, characteristics, images,
			orNow(a.CreatedAt), orNow(a.UpdatedAt))
		if err != nil {
			return fmt.Errorf("snapshot insert animal %s: %w", a.ID, err)
		}
	}

	for id, p := range snap.BreedPages {
		characteristics, err := json.Marshal(emptyIfNil(p.Characteristics))
		if err != nil {
			return fmt.Errorf("snapshot breed page %s: %w", id, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO breed_pages (id, title, hero_description, description, origin,
			                         weight, lifespan, temperament, characteristics,
			                         main_image, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, id, p.Title, p.HeroDescription, p.Description, p.Origin,
			p.Weight, p.Lifespan, p.Temperament, characteristics,
			p.MainImage, orNow(p.LastUpdated))
		if err != nil {
			return fmt.Errorf("snapshot insert breed page %s: %w", id, err)
		}
	}

	for _, f := range snap.FAQ {
		tags, err := json.Marshal(emptyIfNil(f.Tags))
		if err != nil {
			return fmt.Errorf("snapshot faq %s: %w", f.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO faq (id, question, answer, category, display_order, tags,
			                 active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, f.ID, f.Question, f.Answer, f.Category, f.Order, tags,
			f.Active, orNow(f.CreatedAt), orNow(f.UpdatedAt))
		if err != nil {
			return fmt.Errorf("snapshot insert faq %s: %w", f.ID, err)
		}
	}

	for _, r := range snap.Reviews {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reviews (id, author, text, rating, city, review_date, image,
			                     featured, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, r.ID, r.Author, r.Text, r.Rating, r.City, r.Date, r.Image,
			r.Featured, r.Active, orNow(r.CreatedAt), orNow(r.UpdatedAt))
		if err != nil {
			return fmt.Errorf("snapshot insert review %s: %w", r.ID, err)
		}
	}

	for _, v := range snap.Videos {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO videos (id, title, url, category, display_order, active,
			                    autoplay, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, v.ID, v.Title, v.URL, v.Category, v.Order, v.Active,
			v.Autoplay, orNow(v.CreatedAt), orNow(v.UpdatedAt))
		if err != nil {
			return fmt.Errorf("snapshot insert video %s: %w", v.ID, err)
		}
	}

	for key, value := range snap.Settings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES ($1, $2)
		`, key, value)
		if err != nil {
			return fmt.Errorf("snapshot insert setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("snapshot save commit: %w", err)
	}
	return nil
}

func (s *SnapshotStore) loadAnimals(ctx context.Context) ([]models.Animal, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, breed, gender, status, color, age, price, litter,
		       parents, description, characteristics, images, created_at, updated_at
		FROM animals ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load animals: %w", err)
	}
	defer rows.Close()

	animals := []models.Animal{}
	var newest time.Time
	for rows.Next() {
		var a models.Animal
		var characteristics, images []byte
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Breed, &a.Gender, &a.Status, &a.Color, &a.Age,
			&a.Price, &a.Litter, &a.Parents, &a.Description, &characteristics,
			&images, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan animal: %w", err)
		}
		if err := json.Unmarshal(characteristics, &a.Characteristics); err != nil {
			return nil, time.Time{}, fmt.Errorf("decode animal %s characteristics: %w", a.ID, err)
		}
		if err := json.Unmarshal(images, &a.Images); err != nil {
			return nil, time.Time{}, fmt.Errorf("decode animal %s images: %w", a.ID, err)
		}
		newest = later(newest, a.UpdatedAt)
		animals = append(animals, a)
	}
	return animals, newest, rows.Err()
}

func (s *SnapshotStore) loadBreedPages(ctx context.Context) (map[string]models.BreedPage, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, hero_description, description, origin, weight,
		       lifespan, temperament, characteristics, main_image, last_updated
		FROM breed_pages
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load breed pages: %w", err)
	}
	defer rows.Close()

	pages := map[string]models.BreedPage{}
	var newest time.Time
	for rows.Next() {
		var p models.BreedPage
		var characteristics []byte
		if err := rows.Scan(
			&p.ID, &p.Title, &p.HeroDescription, &p.Description, &p.Origin,
			&p.Weight, &p.Lifespan, &p.Temperament, &characteristics,
			&p.MainImage, &p.LastUpdated,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan breed page: %w", err)
		}
		if err := json.Unmarshal(characteristics, &p.Characteristics); err != nil {
			return nil, time.Time{}, fmt.Errorf("decode breed page %s characteristics: %w", p.ID, err)
		}
		newest = later(newest, p.LastUpdated)
		pages[p.ID] = p
	}
	return pages, newest, rows.Err()
}

func (s *SnapshotStore) loadFAQ(ctx context.Context) ([]models.FAQEntry, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, category, display_order, tags, active,
		       created_at, updated_at
		FROM faq ORDER BY display_order ASC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load faq: %w", err)
	}
	defer rows.Close()

	entries := []models.FAQEntry{}
	var newest time.Time
	for rows.Next() {
		var f models.FAQEntry
		var tags []byte
		if err := rows.Scan(
			&f.ID, &f.Question, &f.Answer, &f.Category, &f.Order, &tags,
			&f.Active, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan faq: %w", err)
		}
		if err := json.Unmarshal(tags, &f.Tags); err != nil {
			return nil, time.Time{}, fmt.Errorf("decode faq %s tags: %w", f.ID, err)
		}
		newest = later(newest, f.UpdatedAt)
		entries = append(entries, f)
	}
	return entries, newest, rows.Err()
}

func (s *SnapshotStore) loadReviews(ctx context.Context) ([]models.Review, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author, text, rating, city, review_date, image, featured,
		       active, created_at, updated_at
		FROM reviews ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	var newest time.Time
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.Author, &r.Text, &r.Rating, &r.City, &r.Date, &r.Image,
			&r.Featured, &r.Active, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan review: %w", err)
		}
		newest = later(newest, r.UpdatedAt)
		reviews = append(reviews, r)
	}
	return reviews, newest, rows.Err()
}

func (s *SnapshotStore) loadVideos(ctx context.Context) ([]models.Video, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, category, display_order, active, autoplay,
		       created_at, updated_at
		FROM videos ORDER BY category ASC, display_order ASC
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load videos: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	var newest time.Time
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(
			&v.ID, &v.Title, &v.URL, &v.Category, &v.Order, &v.Active,
			&v.Autoplay, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan video: %w", err)
		}
		newest = later(newest, v.UpdatedAt)
		videos = append(videos, v)
	}
	return videos, newest, rows.Err()
}

func (s *SnapshotStore) loadSettings(ctx context.Context) (models.Settings, time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM settings`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	settings := models.Settings{}
	var newest time.Time
	for rows.Next() {
		var key, value string
		var updated time.Time
		if err := rows.Scan(&key, &value, &updated); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan setting: %w", err)
		}
		newest = later(newest, updated)
		settings[key] = value
	}
	return settings, newest, rows.Err()
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func jsonCols(characteristics, images []string) ([]byte, []byte, error) {
	c, err := json.Marshal(emptyIfNil(characteristics))
	if err != nil {
		return nil, nil, err
	}
	i, err := json.Marshal(emptyIfNil(images))
	if err != nil {
		return nil, nil, err
	}
	return c, i, nil
}
