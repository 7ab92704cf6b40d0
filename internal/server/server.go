// Package server wires the application together: stores, services,
// handlers, middleware and routes. It is the composition root — every
// dependency is constructed here and injected downward, so no other
// package holds global state.
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

	"github.com/tirgei/questioner/internal/auth"
	"github.com/tirgei/questioner/internal/handler"
	"github.com/tirgei/questioner/internal/middleware"
	"github.com/tirgei/questioner/internal/model"
	"github.com/tirgei/questioner/internal/service"
	"github.com/tirgei/questioner/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port      int
	JWTSecret string
}

// Server owns the router and the backing stores. All state lives in
// process memory for the lifetime of the server.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
}

// New creates a Server and assembles the full dependency chain:
//
//	store.Store (per entity) → service (registry) → handler → route
//
// The token service, password service and revocation ledger are shared by
// the user service and the auth middleware.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the services and binds routes.
//
// ROUTE STRUCTURE:
//
//	GET    /                                    → welcome message
//	POST   /api/v1/register                     → create account + tokens
//	POST   /api/v1/login                        → authenticate + tokens
//	POST   /api/v1/token/refresh                → new access token   [refresh]
//	POST   /api/v1/logout                       → revoke token       [access]
//	POST   /api/v1/meetups                      → create meetup      [access]
//	GET    /api/v1/meetups                      → list meetups
//	GET    /api/v1/meetups/{id}                 → get meetup
//	GET    /api/v1/meetups/{id}/questions       → list questions
//	POST   /api/v1/questions                    → post question      [access]
//	PATCH  /api/v1/questions/{id}/upvote        → +1 vote            [access]
//	PATCH  /api/v1/questions/{id}/downvote      → -1 vote            [access]
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	ledger := auth.NewRevocationList()

	// One store per registry; each service owns exactly one.
	users := store.New[*model.User]()
	meetups := store.New[*model.Meetup]()
	questions := store.New[*model.Question]()

	userService := service.NewUserService(users, tokens, passwords, ledger, s.logger)
	meetupService := service.NewMeetupService(meetups, s.logger)
	questionService := service.NewQuestionService(questions, meetupService, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	meetupHandler := handler.NewMeetupHandler(meetupService, s.logger)
	questionHandler := handler.NewQuestionHandler(questionService, s.logger)

	requireAuth := auth.RequireAuth(tokens, ledger)
	requireRefresh := auth.RequireRefresh(tokens, ledger)

	s.router.Get("/", userHandler.HandleIndex)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", userHandler.HandleRegister)
		r.Post("/login", userHandler.HandleLogin)
		r.With(requireRefresh).Post("/token/refresh", userHandler.HandleRefresh)
		r.With(requireAuth).Post("/logout", userHandler.HandleLogout)

		r.Get("/meetups", meetupHandler.HandleList)
		r.Get("/meetups/{id}", meetupHandler.HandleGet)
		r.Get("/meetups/{id}/questions", questionHandler.HandleListByMeetup)
		r.With(requireAuth).Post("/meetups", meetupHandler.HandleCreate)

		r.With(requireAuth).Post("/questions", questionHandler.HandleCreate)
		r.With(requireAuth).Patch("/questions/{id}/upvote", questionHandler.HandleUpvote)
		r.With(requireAuth).Patch("/questions/{id}/downvote", questionHandler.HandleDownvote)
	})

	return nil
}

// Router exposes the assembled handler, mainly for httptest servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully, giving in-flight requests 30 seconds to complete.
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
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
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
