// Package catalog is the sync coordinator: the single entry point the rest
// of the application uses to read or write catalog data. Reads always come
// from the local cache tier and never touch the network; writes land in the
// cache first and are then propagated best-effort to the remote document
// store and, when configured, the relational backend. No failure of an
// upstream tier is ever surfaced to a reader.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"cattery/internal/models"
)

// Collection keys within the cache namespace. The names match the snapshot
// document fields so a cached collection and its snapshot counterpart are
// byte-identical.
const (
	colAnimals    = "cats"
	colBreedPages = "breedPages"
	colFAQ        = "faq"
	colReviews    = "reviews"
	colVideos     = "videos"
	colSettings   = "settings"
	colSnapshot   = "snapshot"
	colLastSync   = "lastSync"
	colLastUpdate = "lastUpdate"
)

// freshWindow is how recently a local write must have happened for
// FreshLocally to report true, letting callers skip a redundant re-fetch.
const freshWindow = 30 * time.Second

// ErrNotFound is returned by deletes and updates that name an entity the
// catalog does not have.
var ErrNotFound = errors.New("catalog: not found")

// KV is the local cache tier contract. Get never fails — absence and
// breakage both read as "not present". Set is an atomic single-key replace
// that fires a change notification on success.
type KV interface {
	GetRaw(ctx context.Context, collection string) ([]byte, bool)
	SetRaw(ctx context.Context, collection string, val []byte) error
}

// DocumentStore is the remote tier: whole-snapshot get and replace.
type DocumentStore interface {
	FetchSnapshot(ctx context.Context) (*models.SyncSnapshot, error)
	ReplaceSnapshot(ctx context.Context, snap *models.SyncSnapshot) error
}

// SnapshotPersister is the optional relational tier, also exchanged at
// snapshot granularity.
type SnapshotPersister interface {
	LoadSnapshot(ctx context.Context) (*models.SyncSnapshot, error)
	SaveSnapshot(ctx context.Context, snap *models.SyncSnapshot) error
}

// Options carries the optional upstream tiers. Both may be nil; the
// coordinator then serves and stores data locally only.
type Options struct {
	Remote     DocumentStore
	Relational SnapshotPersister
}

// Coordinator orchestrates reads and writes across the storage tiers.
// Construct with New, call Initialize once before use.
type Coordinator struct {
	kv     KV
	remote DocumentStore
	rel    SnapshotPersister

	// writeMu serializes writes so at most one snapshot replace is in
	// flight against the remote store at a time. Writers in other
	// processes still race; the last replace wins.
	writeMu sync.Mutex

	now func() time.Time
}

// WriteResult reports how far a write made it. The write itself succeeded
// either way; Propagated is false when the change reached only the local
// cache.
type WriteResult struct {
	Propagated bool
}

// New creates a coordinator on top of the given cache tier.
func New(kv KV, opts Options) *Coordinator {
	return &Coordinator{
		kv:     kv,
		remote: opts.Remote,
		rel:    opts.Relational,
		now:    time.Now,
	}
}

// Initialize hydrates the local cache: remote snapshot first, relational
// tier as fallback, built-in defaults for whatever is still missing. Remote
// failure is logged and absorbed — the catalog always comes up serving
// something.
func (c *Coordinator) Initialize(ctx context.Context) error {
	hydrated := false

	if c.remote != nil {
		snap, err := c.remote.FetchSnapshot(ctx)
		if err != nil {
			slog.Warn("remote snapshot unavailable, serving local data", "error", err)
		} else {
			c.mirror(ctx, snap)
			hydrated = true
		}
	}

	if !hydrated && c.rel != nil {
		if _, ok := c.kv.GetRaw(ctx, colSnapshot); !ok {
			snap, err := c.rel.LoadSnapshot(ctx)
			if err != nil {
				slog.Warn("relational snapshot unavailable", "error", err)
			} else {
				c.mirror(ctx, snap)
			}
		}
	}

	return c.ensureDefaults(ctx)
}

// mirror copies a snapshot's sub-collections into the cache, unless the
// cache already holds newer data. A tier must never overwrite newer data
// with older data, so a snapshot stamped before the cached lastSync is
// dropped.
func (c *Coordinator) mirror(ctx context.Context, snap *models.SyncSnapshot) {
	cached := read[time.Time](ctx, c.kv, colLastSync)
	if !cached.IsZero() && snap.LastSync.Before(cached) {
		slog.Info("upstream snapshot older than cache, keeping local data",
			"upstream", snap.LastSync, "local", cached)
		return
	}

	c.setCollections(ctx, snap)

	stamp := snap.LastSync
	if stamp.IsZero() {
		stamp = c.now().UTC()
	}
	c.put(ctx, colSnapshot, snap)
	c.put(ctx, colLastSync, stamp)
	slog.Info("catalog mirrored from upstream", "lastSync", stamp)
}

func (c *Coordinator) setCollections(ctx context.Context, snap *models.SyncSnapshot) {
	if snap.Cats != nil {
		c.put(ctx, colAnimals, snap.Cats)
	}
	if snap.BreedPages != nil {
		c.put(ctx, colBreedPages, snap.BreedPages)
	}
	if snap.FAQ != nil {
		c.put(ctx, colFAQ, snap.FAQ)
	}
	if snap.Reviews != nil {
		c.put(ctx, colReviews, snap.Reviews)
	}
	if snap.Videos != nil {
		c.put(ctx, colVideos, snap.Videos)
	}
	if snap.Settings != nil {
		c.put(ctx, colSettings, snap.Settings)
	}
}

// ensureDefaults seeds built-in content for any collection still missing,
// so breed pages and settings are always readable even on a cold, offline
// start.
func (c *Coordinator) ensureDefaults(ctx context.Context) error {
	if _, ok := c.kv.GetRaw(ctx, colBreedPages); !ok {
		if err := write(ctx, c.kv, colBreedPages, models.DefaultBreedPages()); err != nil {
			return fmt.Errorf("seed breed pages: %w", err)
		}
	}
	if _, ok := c.kv.GetRaw(ctx, colSettings); !ok {
		if err := write(ctx, c.kv, colSettings, models.DefaultSettings()); err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}
	if _, ok := c.kv.GetRaw(ctx, colAnimals); !ok {
		if err := write(ctx, c.kv, colAnimals, []models.Animal{}); err != nil {
			return fmt.Errorf("seed animals: %w", err)
		}
	}
	for _, col := range []string{colFAQ, colReviews, colVideos} {
		if _, ok := c.kv.GetRaw(ctx, col); !ok {
			if err := c.kv.SetRaw(ctx, col, []byte("[]")); err != nil {
				return fmt.Errorf("seed %s: %w", col, err)
			}
		}
	}
	return nil
}

// FreshLocally reports whether a local write happened within the last 30
// seconds. Callers use it to skip redundant re-fetching.
func (c *Coordinator) FreshLocally(ctx context.Context) bool {
	last := read[time.Time](ctx, c.kv, colLastUpdate)
	if last.IsZero() {
		return false
	}
	return c.now().Sub(last) < freshWindow
}

// put writes a collection and only logs on failure; used on paths where a
// cache miss is preferable to a failed operation.
func (c *Coordinator) put(ctx context.Context, collection string, v any) {
	if err := write(ctx, c.kv, collection, v); err != nil {
		slog.Warn("cache write failed", "collection", collection, "error", err)
	}
}

// read decodes a collection from the cache. Absent keys and corrupt values
// both return the zero value — a malformed cached blob must degrade, never
// crash.
func read[T any](ctx context.Context, kv KV, collection string) T {
	var v T
	raw, ok := kv.GetRaw(ctx, collection)
	if !ok {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("corrupt cached collection, substituting empty value",
			"collection", collection, "error", err)
		var zero T
		return zero
	}
	return v
}

// write encodes and stores a collection as one atomic replace.
func write[T any](ctx context.Context, kv KV, collection string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	return kv.SetRaw(ctx, collection, raw)
}

// newID returns a prefixed, globally-unique entity ID. IDs are never
// reused.
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
