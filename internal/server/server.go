// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Khushi740/job-tracker/internal/config"
	"github.com/Khushi740/job-tracker/internal/server/middleware"
	"github.com/Khushi740/job-tracker/internal/stats"
	"github.com/Khushi740/job-tracker/internal/store"
	"github.com/Khushi740/job-tracker/internal/types"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	jobs        store.Store
	stats       *stats.Aggregator
	log         *zap.Logger
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	// close releases the backing store on shutdown, if set.
	close func()
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a server over the given stores. JWT and password settings
// are read from the environment.
func New(cfg Config, jobs store.Store, users store.UserStore, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		jobs:  jobs,
		stats: stats.New(jobs),
		log:   log,
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(users, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)

	// Every job route requires a bearer token; records are scoped to the
	// authenticated user.
	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }
	mux.Handle("GET /api/jobs", protected(s.handleListJobs))
	mux.Handle("POST /api/jobs", protected(s.handleCreateJob))
	mux.Handle("GET /api/jobs/stats", protected(s.handleStats))
	mux.Handle("GET /api/jobs/{id}", protected(s.handleGetJob))
	mux.Handle("PUT /api/jobs/{id}", protected(s.handleUpdateJob))
	mux.Handle("DELETE /api/jobs/{id}", protected(s.handleArchiveJob))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// OnClose registers a callback run after the server shuts down.
func (s *Server) OnClose(fn func()) {
	s.close = fn
}

// Handler exposes the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens for requests until interrupted, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.close != nil {
		s.close()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error JSON response.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"message": message})
}

// validationResponse reports every violated field of a rejected record.
func validationResponse(w http.ResponseWriter, verr *types.ValidationError) {
	jsonResponse(w, http.StatusBadRequest, map[string]any{
		"message": "Validation failed",
		"errors":  verr.Messages(),
	})
}
