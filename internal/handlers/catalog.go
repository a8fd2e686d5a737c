package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cattery/internal/catalog"
	"cattery/internal/middleware"
	"cattery/internal/models"
	"cattery/internal/store"
)

// Catalog serves the content API. Reads come straight from the local cache
// through the coordinator; writes go through it too and report whether the
// change reached the upstream tiers.
type Catalog struct {
	cat      *catalog.Coordinator
	activity *store.ActivityStore
}

// NewCatalog creates the catalog handler group. activity may be nil when
// the relational tier is disabled; mutations then skip the audit trail.
func NewCatalog(cat *catalog.Coordinator, activity *store.ActivityStore) *Catalog {
	return &Catalog{cat: cat, activity: activity}
}

// logActivity records an admin action on the audit trail, best-effort.
func (h *Catalog) logActivity(r *http.Request, action, description string) {
	if h.activity == nil {
		return
	}
	logWithClaims(r, h.activity, action, description)
}

// logWithClaims resolves the acting user from the request's token claims
// and appends an audit entry. Failures are logged, never surfaced.
func logWithClaims(r *http.Request, activity *store.ActivityStore, action, description string) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return
	}
	if err := activity.Log(userID, action, description); err != nil {
		slog.Warn("activity log failed", "action", action, "error", err)
	}
}

// ListAnimals returns the catalog, optionally filtered with ?breed=.
func (h *Catalog) ListAnimals(w http.ResponseWriter, r *http.Request) {
	if breed := r.URL.Query().Get("breed"); breed != "" {
		writeData(w, h.cat.AnimalsForBreed(r.Context(), breed))
		return
	}
	writeData(w, h.cat.AllAnimals(r.Context()))
}

// CreateAnimal adds a new animal. Any client-sent ID is ignored.
func (h *Catalog) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	var a models.Animal
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	a.ID = ""
	if msg := validateAnimal(&a); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	saved, res, err := h.cat.UpsertAnimal(r.Context(), a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save animal.")
		return
	}
	h.logActivity(r, "animal_created", "Added "+saved.Name)
	writeDataLocal(w, saved, !res.Propagated)
}

// UpdateAnimal replaces an existing animal's record.
func (h *Catalog) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.cat.Animal(r.Context(), id); !ok {
		writeError(w, http.StatusNotFound, "Animal not found.")
		return
	}

	var a models.Animal
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	a.ID = id
	if msg := validateAnimal(&a); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	saved, res, err := h.cat.UpsertAnimal(r.Context(), a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save animal.")
		return
	}
	h.logActivity(r, "animal_updated", "Updated "+saved.Name)
	writeDataLocal(w, saved, !res.Propagated)
}

// DeleteAnimal removes an animal from the catalog.
func (h *Catalog) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.cat.DeleteAnimal(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Animal not found.")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete animal.")
		return
	}
	h.logActivity(r, "animal_deleted", "Deleted animal "+id)
	writeDataLocal(w, map[string]string{"id": id}, !res.Propagated)
}

// ListBreedPages returns all breed pages keyed by slug.
func (h *Catalog) ListBreedPages(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.cat.BreedPages(r.Context()))
}

// GetBreedPage returns one breed page by slug.
func (h *Catalog) GetBreedPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, ok := h.cat.BreedPage(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "Breed page not found.")
		return
	}
	writeData(w, page)
}

// SaveBreedPage saves the breed page content under the slug in the path.
func (h *Catalog) SaveBreedPage(w http.ResponseWriter, r *http.Request) {
	var page models.BreedPage
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	page.ID = chi.URLParam(r, "id")
	if msg := validateBreedPage(&page); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	saved, res, err := h.cat.UpsertBreedPage(r.Context(), page)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save breed page.")
		return
	}
	h.logActivity(r, "breed_page_updated", "Updated breed page "+saved.ID)
	writeDataLocal(w, saved, !res.Propagated)
}

// ListFAQ returns FAQ entries. Admins pass ?all=true for inactive ones too.
func (h *Catalog) ListFAQ(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		writeData(w, h.cat.AllFAQ(r.Context()))
		return
	}
	writeData(w, h.cat.ActiveFAQ(r.Context()))
}

// SaveFAQ creates or updates a FAQ entry.
func (h *Catalog) SaveFAQ(w http.ResponseWriter, r *http.Request) {
	var f models.FAQEntry
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateFAQ(&f); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	saved, res, err := h.cat.UpsertFAQ(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save FAQ entry.")
		return
	}
	h.logActivity(r, "faq_saved", "Saved FAQ entry "+saved.ID)
	writeDataLocal(w, saved, !res.Propagated)
}

// DeleteFAQ removes a FAQ entry.
func (h *Catalog) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.cat.DeleteFAQ(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "FAQ entry not found.")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete FAQ entry.")
		return
	}
	h.logActivity(r, "faq_deleted", "Deleted FAQ entry "+id)
	writeDataLocal(w, map[string]string{"id": id}, !res.Propagated)
}

// ListReviews returns reviews, active ones sorted newest-first by default.
func (h *Catalog) ListReviews(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		writeData(w, h.cat.AllReviews(r.Context()))
		return
	}
	writeData(w, h.cat.ActiveReviews(r.Context()))
}

// SaveReview creates or updates a review.
func (h *Catalog) SaveReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateReview(&review); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	saved, res, err := h.cat.UpsertReview(r.Context(), review)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save review.")
		return
	}
	h.logActivity(r, "review_saved", "Saved review by "+saved.Author)
	writeDataLocal(w, saved, !res.Propagated)
}

// DeleteReview removes a review.
func (h *Catalog) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.cat.DeleteReview(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Review not found.")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not delete review.")
		return
	}
	h.logActivity(r, "review_deleted", "Deleted review "+id)
	writeDataLocal(w, map[string]string{"id": id}, !res.Propagated)
}

// ListVideos returns active videos, optionally one category via ?category=.
func (h *Catalog) ListVideos(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		writeData(w, h.cat.AllVideos(r.Context()))
		return
	}
	if category := r.URL.Query().Get("category"); category != "" {
		writeData(w, h.cat.VideosByCategory(r.Context(), category))
		return
	}
	writeData(w, h.cat.ActiveVideos(r.Context()))
}

// SaveVideo creates or updates a video.
func (h *Catalog) SaveVideo(w http.ResponseWriter, r *http.Request) {
	var v models.Video
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateVideo(&v); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	saved, res, err := h.cat.UpsertVideo(r.Context(), v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save video.")
		return
	}
	h.logActivity(r, "video_saved", "Saved video "+saved.Title)
	writeDataLocal(w, saved, !res.Propagated)
}

// GetSettings returns the site settings.
func (h *Catalog) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.cat.Settings(r.Context()))
}

// SaveSettings merges the posted keys into the stored settings.
func (h *Catalog) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var incoming models.Settings
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	merged, res, err := h.cat.UpsertSettings(r.Context(), incoming)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not save settings.")
		return
	}
	h.logActivity(r, "settings_updated", "Updated site settings")
	writeDataLocal(w, merged, !res.Propagated)
}

// GetStats returns the dashboard counters.
func (h *Catalog) GetStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.cat.Stats(r.Context()))
}

// Activity returns the recent admin audit trail.
func (h *Catalog) Activity(w http.ResponseWriter, r *http.Request) {
	if h.activity == nil {
		writeError(w, http.StatusServiceUnavailable, "Activity log requires the database backend.")
		return
	}
	entries, err := h.activity.Recent(10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not load activity.")
		return
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	writeData(w, entries)
}
