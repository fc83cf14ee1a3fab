// Package server wires the database, services, handlers, and routes into a
// running HTTP API. It is the composition root — every dependency is
// assembled here and nowhere else, so main.go stays a thin shell.
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

	"github.com/tharindu/classtrack/internal/auth"
	"github.com/tharindu/classtrack/internal/handler"
	"github.com/tharindu/classtrack/internal/middleware"
	sqliteRepo "github.com/tharindu/classtrack/internal/repository/sqlite"
	"github.com/tharindu/classtrack/internal/service"
)

// Config holds server configuration, loaded from the environment by main.
type Config struct {
	Port       int
	DBPath     string
	CORSOrigin string // origin allowed to call the API from a browser; "*" for dev
	BcryptCost int    // 0 means the service default
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL gets flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// sqlite.DB → services → handlers → routes. Each layer only receives what it
// needs — handlers never touch the database, services never touch HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start does this itself; Close is for callers
// that never call Start, like tests.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures middleware and all route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register     → create a staff account (public)
//	GET    /api/auth/me           → current account (Basic auth)
//	GET    /api/classes           → list classes (Basic auth)
//	GET    /api/classes/{id}      → single class (Basic auth)
//	POST   /api/classes           → create class (Basic auth)
//	PUT    /api/classes/{id}      → replace class (Basic auth)
//	DELETE /api/classes/{id}      → delete class (Basic auth)
//
// Everything except registration requires credentials. The console's login
// step is a probe of GET /api/classes, so that route staying protected is
// what makes a bad password fail fast.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	passwords := auth.NewPasswordService()
	if s.config.BcryptCost > 0 {
		passwords = auth.NewPasswordServiceForTest(s.config.BcryptCost)
	}

	userService := service.NewUserService(s.db, passwords, s.logger)
	classService := service.NewClassService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(userService, s.logger)
	classHandler := handler.NewClassHandler(classService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireBasic(userService))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/classes", classHandler.HandleList)
			r.Get("/classes/{id}", classHandler.HandleGet)
			r.Post("/classes", classHandler.HandleCreate)
			r.Put("/classes/{id}", classHandler.HandleUpdate)
			r.Delete("/classes/{id}", classHandler.HandleDelete)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds,
// close the database.
func (s *Server) Start() error {
	defer s.db.Close()

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
			slog.String("database", s.config.DBPath),
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
