package store

import (
	"context"
	"testing"
	"time"

	"cattery/internal/models"
)

func TestSnapshotStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewSnapshotStore(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	snap := models.EmptySnapshot()
	snap.Cats = []models.Animal{{
		ID:        "cat_roundtrip",
		Name:      "Luna",
		Breed:     "British Chinchilla",
		Gender:    "female",
		Status:    models.AnimalAvailable,
		Images:    []string{"uploads/luna.jpg"},
		CreatedAt: now,
		UpdatedAt: now,
	}}
	snap.BreedPages = map[string]models.BreedPage{
		"chinchilla": {
			ID:              "chinchilla",
			Title:           "British Chinchilla",
			HeroDescription: "Silver-shaded companions",
			Characteristics: []string{"calm", "plush coat"},
			LastUpdated:     now,
		},
	}
	snap.FAQ = []models.FAQEntry{{
		ID: "faq_roundtrip", Question: "Do you ship?", Answer: "Yes.",
		Category: "general", Order: 1, Active: true,
		CreatedAt: now, UpdatedAt: now,
	}}
	snap.Reviews = []models.Review{{
		ID: "review_roundtrip", Author: "Anna", Text: "Lovely kitten",
		Rating: 5, Date: "2026-08-01", Active: true,
		CreatedAt: now, UpdatedAt: now,
	}}
	snap.Videos = []models.Video{{
		ID: "video_roundtrip", Title: "Kittens playing",
		URL: "https://example.com/v/1", Category: "main", Order: 1,
		Active: true, CreatedAt: now, UpdatedAt: now,
	}}
	snap.Settings = models.Settings{"catteryName": "Round Trip Cattery"}

	if err := s.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(got.Cats) != 1 || got.Cats[0].ID != "cat_roundtrip" {
		t.Fatalf("animals: got %+v", got.Cats)
	}
	if got.Cats[0].Images[0] != "uploads/luna.jpg" {
		t.Errorf("animal images lost: %+v", got.Cats[0].Images)
	}
	page, ok := got.BreedPages["chinchilla"]
	if !ok {
		t.Fatal("expected chinchilla breed page")
	}
	if len(page.Characteristics) != 2 {
		t.Errorf("breed page characteristics: got %v", page.Characteristics)
	}
	if len(got.FAQ) != 1 || got.FAQ[0].Question != "Do you ship?" {
		t.Errorf("faq: got %+v", got.FAQ)
	}
	if len(got.Reviews) != 1 || got.Reviews[0].Date != "2026-08-01" {
		t.Errorf("reviews: got %+v", got.Reviews)
	}
	if len(got.Videos) != 1 || got.Videos[0].Category != "main" {
		t.Errorf("videos: got %+v", got.Videos)
	}
	if got.Settings.Get("catteryName", "") != "Round Trip Cattery" {
		t.Errorf("settings: got %+v", got.Settings)
	}
	if got.LastSync.IsZero() {
		t.Error("expected non-zero LastSync from populated tables")
	}

	// A second save replaces, not appends.
	snap.Cats = nil
	snap.Cats = []models.Animal{}
	if err := s.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("SaveSnapshot (replace): %v", err)
	}
	got, err = s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot (replace): %v", err)
	}
	if len(got.Cats) != 0 {
		t.Errorf("expected animals cleared on replace, got %d", len(got.Cats))
	}
}

func TestActivityStoreLogAndRecent(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	activity := NewActivityStore(db)

	username := "test-activity"
	t.Cleanup(func() { cleanUsers(t, db, username) })
	insertTestUser(t, db, username)

	u, err := users.FindByUsername(username)
	if err != nil || u == nil {
		t.Fatalf("FindByUsername: %v", err)
	}

	if err := activity.Log(u.ID, "animal_created", "Added Luna"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := activity.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Action == "animal_created" && e.Description == "Added Luna" {
			found = true
			if e.UserName != "Test User" {
				t.Errorf("user name join: got %q", e.UserName)
			}
		}
	}
	if !found {
		t.Error("logged entry not returned by Recent")
	}
}
