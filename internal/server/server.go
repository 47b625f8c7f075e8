// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: main.go hands over the config and logger,
// and New assembles the whole dependency chain in one place —
//
//	jsonfile.Store → services (session/screen/folder/asset) → handlers → routes
//
// Handlers never touch the store directly and services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/linkdeck/internal/auth"
	"github.com/sakif/linkdeck/internal/config"
	"github.com/sakif/linkdeck/internal/handler"
	"github.com/sakif/linkdeck/internal/middleware"
	"github.com/sakif/linkdeck/internal/service"
	"github.com/sakif/linkdeck/internal/store/jsonfile"
)

// Server owns the router and the wired dependency graph.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
}

// New creates a Server: store, verifier, services, handlers, routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	st, err := jsonfile.New(cfg.DataFile, logger)
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	verifier, err := auth.NewVerifier(cfg.Secret, cfg.LoginWindow)
	if err != nil {
		return nil, fmt.Errorf("creating credential verifier: %w", err)
	}

	sessions := service.NewSessionService(st, verifier, cfg.Secret, cfg.SessionTTL, logger)
	screens := service.NewScreenService(st, logger)
	folders := service.NewFolderService(st, logger)
	assets, err := service.NewAssetService(st, cfg.UploadsDir, logger)
	if err != nil {
		return nil, fmt.Errorf("creating asset service: %w", err)
	}

	authHandler := handler.NewAuthHandler(sessions, cfg.SessionTTL, cfg.CookieSecure, cfg.RedirectURL, logger)
	screenHandler := handler.NewScreenHandler(screens, logger)
	folderHandler := handler.NewFolderHandler(folders, logger)
	assetHandler := handler.NewAssetHandler(assets, logger)
	pageHandler, err := handler.NewPageHandler(cfg.TemplateDir, screens, folders, assets, logger)
	if err != nil {
		return nil, fmt.Errorf("creating page handler: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	// === Global middleware, in execution order ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// === Public routes ===
	// Uploaded images are served straight from the uploads directory:
	// GET /assets/abc123.png → {UploadsDir}/abc123.png
	fileServer := http.FileServer(http.Dir(cfg.UploadsDir))
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", fileServer))

	s.router.Get("/auth/login", authHandler.HandleLogin)
	s.router.Get("/auth/logout", authHandler.HandleLogout)
	s.router.Get("/s/{slug}", pageHandler.HandleView)

	// === Protected routes ===
	// Everything behind RequireLogin: the dashboard, the identity probe, and
	// the full management API.
	requireLogin := auth.RequireLogin(sessions, cfg.RedirectURL, cfg.CookieSecure)
	s.router.Group(func(r chi.Router) {
		r.Use(requireLogin)

		r.Get("/auth/me", authHandler.HandleMe)
		r.Get("/manager", pageHandler.HandleManager)

		r.Route("/api", func(r chi.Router) {
			r.Post("/screens/preview", pageHandler.HandlePreview)
			r.Post("/screens/save", screenHandler.HandleSave)
			r.Post("/screens/delete", screenHandler.HandleDelete)
			r.Post("/folders/create", folderHandler.HandleCreate)
			r.Post("/folders/delete", folderHandler.HandleDelete)
			r.Get("/assets/list", assetHandler.HandleList)
			r.Post("/assets/upload", assetHandler.HandleUpload)
		})
	})

	return s, nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully, giving in-flight requests 30 seconds to finish.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("document", s.config.DataFile),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
