// Package router sets up all HTTP routes and middleware chains for the
// catalog API. Public reads need no token; mutations and admin endpoints
// require a valid bearer token.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cattery/internal/handlers"
	"cattery/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(jwtSecret []byte, auth *handlers.Auth, catalog *handlers.Catalog, media *handlers.Media) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", auth.Login)

		// Public catalog reads.
		r.Get("/animals", catalog.ListAnimals)
		r.Get("/breed-pages", catalog.ListBreedPages)
		r.Get("/breed-pages/{id}", catalog.GetBreedPage)
		r.Get("/faq", catalog.ListFAQ)
		r.Get("/reviews", catalog.ListReviews)
		r.Get("/videos", catalog.ListVideos)
		r.Get("/settings", catalog.GetSettings)
		r.Get("/stats", catalog.GetStats)

		// Authenticated admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))

			r.Get("/auth/verify", auth.Verify)
			r.Post("/auth/totp/setup", auth.TOTPSetup)
			r.Post("/auth/totp/enable", auth.TOTPEnable)

			r.Post("/animals", catalog.CreateAnimal)
			r.Put("/animals/{id}", catalog.UpdateAnimal)
			r.Delete("/animals/{id}", catalog.DeleteAnimal)

			r.Post("/breed-pages/{id}", catalog.SaveBreedPage)

			r.Post("/faq", catalog.SaveFAQ)
			r.Delete("/faq/{id}", catalog.DeleteFAQ)

			r.Post("/reviews", catalog.SaveReview)
			r.Delete("/reviews/{id}", catalog.DeleteReview)

			r.Post("/videos", catalog.SaveVideo)

			r.Post("/settings", catalog.SaveSettings)

			r.Get("/activity", catalog.Activity)

			r.Post("/upload", media.Upload)
		})
	})

	return r
}

// healthHandler responds with a simple OK for load balancer checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
