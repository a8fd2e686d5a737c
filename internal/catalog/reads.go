package catalog

import (
	"context"
	"sort"
	"time"

	"cattery/internal/models"
)

// Read accessors. All of them serve straight from the local cache tier:
// they never block on network I/O, at the cost of potential staleness.

// AllAnimals returns every animal in the catalog.
func (c *Coordinator) AllAnimals(ctx context.Context) []models.Animal {
	return read[[]models.Animal](ctx, c.kv, colAnimals)
}

// Animal returns one animal by ID.
func (c *Coordinator) Animal(ctx context.Context, id string) (models.Animal, bool) {
	for _, a := range c.AllAnimals(ctx) {
		if a.ID == id {
			return a, true
		}
	}
	return models.Animal{}, false
}

// AnimalsForBreed returns the animals whose breed matches the query,
// case-insensitively and in both substring directions, so minor naming
// variation ("Devon" vs "Devon Rex") still matches.
func (c *Coordinator) AnimalsForBreed(ctx context.Context, name string) []models.Animal {
	var matched []models.Animal
	for _, a := range c.AllAnimals(ctx) {
		if a.MatchesBreed(name) {
			matched = append(matched, a)
		}
	}
	return matched
}

// BreedPages returns every breed page, with built-in defaults filling in
// any known breed that has no saved override.
func (c *Coordinator) BreedPages(ctx context.Context) map[string]models.BreedPage {
	pages := read[map[string]models.BreedPage](ctx, c.kv, colBreedPages)
	if pages == nil {
		pages = map[string]models.BreedPage{}
	}
	for id, def := range models.DefaultBreedPages() {
		if _, ok := pages[id]; !ok {
			pages[id] = def
		}
	}
	return pages
}

// BreedPage returns one breed page. For the known breed set this never
// reports false: the built-in default stands in when nothing was saved.
func (c *Coordinator) BreedPage(ctx context.Context, id string) (models.BreedPage, bool) {
	pages := read[map[string]models.BreedPage](ctx, c.kv, colBreedPages)
	if page, ok := pages[id]; ok {
		return page, true
	}
	if def, ok := models.DefaultBreedPages()[id]; ok {
		return def, true
	}
	return models.BreedPage{}, false
}

// AllFAQ returns every FAQ entry, including inactive ones.
func (c *Coordinator) AllFAQ(ctx context.Context) []models.FAQEntry {
	return read[[]models.FAQEntry](ctx, c.kv, colFAQ)
}

// ActiveFAQ returns the active entries in display order.
func (c *Coordinator) ActiveFAQ(ctx context.Context) []models.FAQEntry {
	var active []models.FAQEntry
	for _, f := range c.AllFAQ(ctx) {
		if f.Active {
			active = append(active, f)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder() < active[j].DisplayOrder()
	})
	return active
}

// AllReviews returns every review, including inactive ones.
func (c *Coordinator) AllReviews(ctx context.Context) []models.Review {
	return read[[]models.Review](ctx, c.kv, colReviews)
}

// ActiveReviews returns the active reviews, newest first.
func (c *Coordinator) ActiveReviews(ctx context.Context) []models.Review {
	var active []models.Review
	for _, r := range c.AllReviews(ctx) {
		if r.Active {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].GivenAt().After(active[j].GivenAt())
	})
	return active
}

// AllVideos returns every video, including inactive ones.
func (c *Coordinator) AllVideos(ctx context.Context) []models.Video {
	return read[[]models.Video](ctx, c.kv, colVideos)
}

// ActiveVideos returns the active videos sorted by category, then display
// order within the category.
func (c *Coordinator) ActiveVideos(ctx context.Context) []models.Video {
	var active []models.Video
	for _, v := range c.AllVideos(ctx) {
		if v.Active {
			active = append(active, v)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Category != active[j].Category {
			return active[i].Category < active[j].Category
		}
		return active[i].DisplayOrder() < active[j].DisplayOrder()
	})
	return active
}

// VideosByCategory returns the active videos of one category in display
// order.
func (c *Coordinator) VideosByCategory(ctx context.Context, category string) []models.Video {
	var matched []models.Video
	for _, v := range c.ActiveVideos(ctx) {
		if v.Category == category {
			matched = append(matched, v)
		}
	}
	return matched
}

// Settings returns the site settings map. Never nil.
func (c *Coordinator) Settings(ctx context.Context) models.Settings {
	settings := read[models.Settings](ctx, c.kv, colSettings)
	if settings == nil {
		settings = models.Settings{}
	}
	return settings
}

// Stats returns the dashboard counters.
func (c *Coordinator) Stats(ctx context.Context) models.Stats {
	stats := models.Stats{
		ActiveFAQ:     len(c.ActiveFAQ(ctx)),
		ActiveReviews: len(c.ActiveReviews(ctx)),
	}
	for _, a := range c.AllAnimals(ctx) {
		stats.TotalAnimals++
		if a.Status == models.AnimalAvailable {
			stats.AvailableAnimals++
		}
	}
	return stats
}

// Snapshot assembles the current aggregate from the cached collections.
func (c *Coordinator) Snapshot(ctx context.Context) *models.SyncSnapshot {
	snap := models.EmptySnapshot()
	if animals := c.AllAnimals(ctx); animals != nil {
		snap.Cats = animals
	}
	snap.BreedPages = c.BreedPages(ctx)
	if faq := c.AllFAQ(ctx); faq != nil {
		snap.FAQ = faq
	}
	if reviews := c.AllReviews(ctx); reviews != nil {
		snap.Reviews = reviews
	}
	if videos := c.AllVideos(ctx); videos != nil {
		snap.Videos = videos
	}
	snap.Settings = c.Settings(ctx)
	snap.LastSync = read[time.Time](ctx, c.kv, colLastSync)
	return snap
}
