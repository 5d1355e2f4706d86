package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-notes-server/internal/config"
	"simple-notes-server/internal/handler"
	"simple-notes-server/internal/identity"
	"simple-notes-server/internal/metrics"
	"simple-notes-server/internal/middleware"
	"simple-notes-server/internal/repository"
	"simple-notes-server/internal/service"
	"simple-notes-server/internal/session"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	db, err := sql.Open("postgres", cfg.Database.URL())
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to reach database: %v", err)
	}

	if err := runMigrations(cfg.Database.URL()); err != nil {
		logger.Fatalf("Migration error: %v", err)
	}

	metrics.Init()

	provider := identity.NewClient(cfg.Auth.ProviderURL, cfg.Auth.ProviderKey, cfg.Auth.ProviderTimeout)

	// The guard must resolve credentials itself before it can fill the
	// propagation header, so under the header strategy it falls back to the
	// delegated resolver and only the handlers trust the header.
	guardCfg := cfg.Auth
	if guardCfg.Strategy == "header" {
		guardCfg.Strategy = "delegated"
	}
	guardResolver, err := session.NewResolver(guardCfg, provider)
	if err != nil {
		logger.Fatalf("Failed to build session resolver: %v", err)
	}

	var handlerResolver session.Resolver = guardResolver
	if cfg.Auth.Strategy == "header" {
		handlerResolver = &session.HeaderResolver{}
	}

	noteRepo := repository.NewNoteRepository(db)
	noteService := service.NewNoteService(noteRepo)
	noteHandler := handler.NewNoteHandler(noteService, logger)
	authHandler := handler.NewAuthHandler(provider, handlerResolver, cfg.Auth.CookieName, logger)

	r := mux.NewRouter()

	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/session", authHandler.Session).Methods("GET", "OPTIONS")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")

	notes := api.PathPrefix("/notes").Subrouter()
	notes.Use(middleware.RequireIdentity(handlerResolver))
	notes.HandleFunc("", noteHandler.List).Methods("GET", "OPTIONS")
	notes.HandleFunc("", noteHandler.Create).Methods("POST", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Update).Methods("PUT", "OPTIONS")
	notes.HandleFunc("/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	// The guard wraps the whole router so page navigation to unregistered
	// protected paths still redirects instead of falling through to a 404.
	// Logging and CORS wrap the guard in turn, so its 401s and redirects are
	// logged, counted, and readable cross-origin.
	var root http.Handler = middleware.RouteGuard(guardResolver)(r)
	root = middleware.CORSMiddleware(cfg.CORS)(root)
	root = middleware.RequestLogger(logger)(root)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":     addr,
			"env":      cfg.Server.Env,
			"strategy": cfg.Auth.Strategy,
		}).Info("starting notes server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server stopped gracefully")
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err = m.Up(); !errors.Is(err, migrate.ErrNoChange) && err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"simple-notes-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Simple Notes API","version":"1.0.0","endpoints":{"/api/auth/login":"POST","/api/auth/session":"GET","/api/notes":"GET, POST (protected)","/api/notes/{id}":"GET, PUT, DELETE (protected)"}}`))
}
