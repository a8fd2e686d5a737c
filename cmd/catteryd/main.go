// Package main is the entry point for the cattery catalog server.
// It loads configuration, connects to the storage tiers, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cattery/internal/cache"
	"cattery/internal/catalog"
	"cattery/internal/config"
	"cattery/internal/database"
	"cattery/internal/docstore"
	"cattery/internal/handlers"
	"cattery/internal/router"
	"cattery/internal/storage"
	"cattery/internal/store"
)

func main() {
	// Structured logger — outputs text with debug level everywhere; the
	// service is small enough that one verbosity fits all environments.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"database", cfg.HasDatabase(),
		"docstore", cfg.DocstoreBaseURL != "",
	)

	// PostgreSQL is optional; without it the service runs on the cache and
	// document store alone and the auth endpoints answer 503.
	var userStore *store.UserStore
	var activityStore *store.ActivityStore
	var snapshotStore *store.SnapshotStore
	if cfg.HasDatabase() {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}

		userStore = store.NewUserStore(db)
		activityStore = store.NewActivityStore(db)
		snapshotStore = store.NewSnapshotStore(db)
	} else {
		slog.Warn("database not configured — auth and activity log disabled")
	}

	// Valkey is the local tier and is required.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	cacheStore := cache.NewStore(valkeyClient, "cattery")
	defer cacheStore.Close()

	// Remote document store (optional).
	var remote catalog.DocumentStore
	if cfg.DocstoreBaseURL != "" {
		loader := docstore.NewConfigLoader(cfg.SyncConfigURL, cacheStore)
		remote = docstore.NewClient(cfg.DocstoreBaseURL, cfg.DocstoreDocumentID, cfg.DocstoreToken, loader)
	} else {
		slog.Warn("document store not configured — running without the remote tier")
	}

	coordinator := catalog.New(cacheStore, catalog.Options{
		Remote:     remote,
		Relational: relationalOrNil(snapshotStore),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := coordinator.Initialize(ctx); err != nil {
		cancel()
		slog.Error("failed to initialize catalog", "error", err)
		os.Exit(1)
	}
	cancel()

	// S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	jwtSecret := []byte(cfg.JWTSecret)
	authHandler := handlers.NewAuth(userStore, jwtSecret)
	catalogHandler := handlers.NewCatalog(coordinator, activityStore)
	mediaHandler := handlers.NewMedia(storageClient, activityStore)

	r := router.New(jwtSecret, authHandler, catalogHandler, mediaHandler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an interrupt or termination signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// relationalOrNil avoids storing a typed nil inside the interface when the
// database tier is disabled.
func relationalOrNil(s *store.SnapshotStore) catalog.SnapshotPersister {
	if s == nil {
		return nil
	}
	return s
}
