package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"cattery/internal/models"
)

// Write accessors. Each applies its change to the local cache first — the
// caller's next read sees it immediately — then propagates the full
// snapshot upstream best-effort. Propagation failure never rolls the local
// change back and never fails the call; it only clears the Propagated flag.
// Writes are serialized so only one snapshot replace is in flight at a time.

// UpsertAnimal creates or updates an animal. An empty ID creates a new
// record; a known ID updates it in place; an unknown non-empty ID inserts,
// keeping the caller's ID.
func (c *Coordinator) UpsertAnimal(ctx context.Context, a models.Animal) (models.Animal, WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	now := c.now().UTC()
	animals := read[[]models.Animal](ctx, c.kv, colAnimals)

	if a.ID == "" {
		a.ID = newID("cat")
	}
	updated := false
	for i := range animals {
		if animals[i].ID == a.ID {
			a.CreatedAt = animals[i].CreatedAt
			a.UpdatedAt = now
			animals[i] = a
			updated = true
			break
		}
	}
	if !updated {
		a.CreatedAt = now
		a.UpdatedAt = now
		animals = append(animals, a)
	}

	if err := write(ctx, c.kv, colAnimals, animals); err != nil {
		return a, WriteResult{}, err
	}
	return a, c.afterWrite(ctx), nil
}

// DeleteAnimal removes an animal. Deleting an unknown ID is reported to the
// caller, not swallowed.
func (c *Coordinator) DeleteAnimal(ctx context.Context, id string) (WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	animals := read[[]models.Animal](ctx, c.kv, colAnimals)
	kept := animals[:0:0]
	for _, a := range animals {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(animals) {
		return WriteResult{}, fmt.Errorf("%w: animal %s", ErrNotFound, id)
	}

	if err := write(ctx, c.kv, colAnimals, kept); err != nil {
		return WriteResult{}, err
	}
	return c.afterWrite(ctx), nil
}

// UpsertBreedPage saves a breed page under its slug. Pages are never
// deleted in normal flow; missing ones fall back to defaults on read.
func (c *Coordinator) UpsertBreedPage(ctx context.Context, page models.BreedPage) (models.BreedPage, WriteResult, error) {
	if page.ID == "" {
		return page, WriteResult{}, fmt.Errorf("breed page id is required")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	pages := read[map[string]models.BreedPage](ctx, c.kv, colBreedPages)
	if pages == nil {
		pages = map[string]models.BreedPage{}
	}
	page.LastUpdated = c.now().UTC()
	pages[page.ID] = page

	if err := write(ctx, c.kv, colBreedPages, pages); err != nil {
		return page, WriteResult{}, err
	}
	return page, c.afterWrite(ctx), nil
}

// UpsertFAQ creates or updates a FAQ entry. Re-applying an identical entry
// leaves the list unchanged in content but still bumps its timestamp and
// fires a change notification.
func (c *Coordinator) UpsertFAQ(ctx context.Context, f models.FAQEntry) (models.FAQEntry, WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	now := c.now().UTC()
	entries := read[[]models.FAQEntry](ctx, c.kv, colFAQ)

	if f.ID == "" {
		f.ID = newID("faq")
	}
	updated := false
	for i := range entries {
		if entries[i].ID == f.ID {
			f.CreatedAt = entries[i].CreatedAt
			f.UpdatedAt = now
			entries[i] = f
			updated = true
			break
		}
	}
	if !updated {
		f.CreatedAt = now
		f.UpdatedAt = now
		entries = append(entries, f)
	}

	if err := write(ctx, c.kv, colFAQ, entries); err != nil {
		return f, WriteResult{}, err
	}
	return f, c.afterWrite(ctx), nil
}

// DeleteFAQ removes a FAQ entry by ID.
func (c *Coordinator) DeleteFAQ(ctx context.Context, id string) (WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	entries := read[[]models.FAQEntry](ctx, c.kv, colFAQ)
	kept := entries[:0:0]
	for _, f := range entries {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(entries) {
		return WriteResult{}, fmt.Errorf("%w: faq entry %s", ErrNotFound, id)
	}

	if err := write(ctx, c.kv, colFAQ, kept); err != nil {
		return WriteResult{}, err
	}
	return c.afterWrite(ctx), nil
}

// UpsertReview creates or updates a review.
func (c *Coordinator) UpsertReview(ctx context.Context, r models.Review) (models.Review, WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	now := c.now().UTC()
	reviews := read[[]models.Review](ctx, c.kv, colReviews)

	if r.ID == "" {
		r.ID = newID("review")
	}
	if r.Date == "" {
		r.Date = now.Format("2006-01-02")
	}
	updated := false
	for i := range reviews {
		if reviews[i].ID == r.ID {
			r.CreatedAt = reviews[i].CreatedAt
			r.UpdatedAt = now
			reviews[i] = r
			updated = true
			break
		}
	}
	if !updated {
		r.CreatedAt = now
		r.UpdatedAt = now
		reviews = append(reviews, r)
	}

	if err := write(ctx, c.kv, colReviews, reviews); err != nil {
		return r, WriteResult{}, err
	}
	return r, c.afterWrite(ctx), nil
}

// DeleteReview removes a review by ID.
func (c *Coordinator) DeleteReview(ctx context.Context, id string) (WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	reviews := read[[]models.Review](ctx, c.kv, colReviews)
	kept := reviews[:0:0]
	for _, r := range reviews {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(reviews) {
		return WriteResult{}, fmt.Errorf("%w: review %s", ErrNotFound, id)
	}

	if err := write(ctx, c.kv, colReviews, kept); err != nil {
		return WriteResult{}, err
	}
	return c.afterWrite(ctx), nil
}

// UpsertVideo creates or updates a video.
func (c *Coordinator) UpsertVideo(ctx context.Context, v models.Video) (models.Video, WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	now := c.now().UTC()
	videos := read[[]models.Video](ctx, c.kv, colVideos)

	if v.ID == "" {
		v.ID = newID("video")
	}
	if v.Category == "" {
		v.Category = "main"
	}
	updated := false
	for i := range videos {
		if videos[i].ID == v.ID {
			v.CreatedAt = videos[i].CreatedAt
			v.UpdatedAt = now
			videos[i] = v
			updated = true
			break
		}
	}
	if !updated {
		v.CreatedAt = now
		v.UpdatedAt = now
		videos = append(videos, v)
	}

	if err := write(ctx, c.kv, colVideos, videos); err != nil {
		return v, WriteResult{}, err
	}
	return v, c.afterWrite(ctx), nil
}

// UpsertSettings merges the given keys into the stored settings. Existing
// keys not mentioned are kept.
func (c *Coordinator) UpsertSettings(ctx context.Context, incoming models.Settings) (models.Settings, WriteResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	current := read[models.Settings](ctx, c.kv, colSettings)
	if current == nil {
		current = models.Settings{}
	}
	merged := current.Merge(incoming)

	if err := write(ctx, c.kv, colSettings, merged); err != nil {
		return merged, WriteResult{}, err
	}
	return merged, c.afterWrite(ctx), nil
}

// afterWrite stamps the freshness markers, rebuilds the aggregate snapshot
// and pushes it upstream. Must be called with writeMu held.
func (c *Coordinator) afterWrite(ctx context.Context) WriteResult {
	now := c.now().UTC()

	snap := c.Snapshot(ctx)
	snap.LastSync = now
	c.put(ctx, colSnapshot, snap)
	c.put(ctx, colLastSync, now)
	c.put(ctx, colLastUpdate, now)

	propagated := false
	if c.remote != nil {
		if err := c.remote.ReplaceSnapshot(ctx, snap); err != nil {
			slog.Warn("remote propagation failed, change kept locally", "error", err)
		} else {
			propagated = true
		}
	}

	if c.rel != nil {
		if err := c.rel.SaveSnapshot(ctx, snap); err != nil {
			slog.Warn("relational propagation failed, change kept locally", "error", err)
		}
	}

	return WriteResult{Propagated: propagated}
}
