//	@title			Fotofolio API
//	@version		1.0
//	@description	Backend for a personal photography portfolio: album browsing and admin photo uploads.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/fotofolio/service/internal/album"
	"github.com/fotofolio/service/internal/auth"
	"github.com/fotofolio/service/internal/config"
	"github.com/fotofolio/service/internal/db"
	appMiddleware "github.com/fotofolio/service/internal/middleware"
	"github.com/fotofolio/service/internal/photo"
	"github.com/fotofolio/service/internal/response"
	"github.com/fotofolio/service/internal/storage"

	_ "github.com/fotofolio/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	// Wire dependencies: repository → service → handler
	admin := auth.NewAdmin(cfg.AdminSecret, cfg.AdminUIDs, cfg.AdminEmails, auth.NewVerifier(cfg.JWTSecret))

	photoRepo := photo.NewRepository(pool)
	photoSvc := photo.NewService(photoRepo, store)
	photoHandler := photo.NewHandler(photoSvc, admin, cfg.MaxUploadBytes, cfg.AllowedMimeTypes)

	albumRepo := album.NewRepository(pool)
	albumSvc := album.NewService(albumRepo, store)
	albumHandler := album.NewHandler(albumSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		// Reflect any origin so the browser admin dashboard can send
		// credentialed requests from wherever it is hosted.
		AllowOriginFunc: func(r *http.Request, origin string) bool { return true },
		AllowedMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type", "X-Client-Info",
			"X-Request-ID", auth.SecretHeader,
		},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every response, including router-level misses, is JSON.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public browse
	r.Get("/albums/{slug}", albumHandler.Get)

	// Admin surface: the upload endpoint runs its own dual authorization
	// so it can distinguish 401 from 403 per credential; the read-only
	// admin endpoints share the RequireAdmin gate.
	r.Post("/upload-photo", photoHandler.Upload)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(admin))
		r.Get("/list-albums", albumHandler.List)
		r.Get("/admin/orphans", photoHandler.Orphans)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
