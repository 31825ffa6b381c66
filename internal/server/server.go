// Package server provides the HTTP REST API for the applicant selector.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/applicant-selector/internal/db"
	"github.com/jonathan/applicant-selector/internal/pipeline"
	"github.com/jonathan/applicant-selector/internal/server/ratelimit"
	"github.com/jonathan/applicant-selector/internal/types"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// DefaultMaxUploadBytes is the per-file upload limit
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// ApplicantStore is the persistence the API reads from
type ApplicantStore interface {
	Ping(ctx context.Context) (time.Time, error)
	ListApplicants(ctx context.Context, filters db.ApplicantFilters) ([]types.ScoredApplicant, error)
	GetApplicant(ctx context.Context, id uuid.UUID) (*types.ScoredApplicant, error)
	ListSkills(ctx context.Context, applicantID uuid.UUID) ([]db.Skill, error)
	DeleteApplicant(ctx context.Context, id uuid.UUID) error
	GetStatistics(ctx context.Context) (*db.Statistics, error)
}

// Intake processes submitted applications
type Intake interface {
	Process(ctx context.Context, sub pipeline.Submission) (*pipeline.Result, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       ApplicantStore
	intake      Intake
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate

	maxUploadBytes         int64
	defaultAssessmentScore *int
}

// Config holds server configuration
type Config struct {
	Port                   int
	MaxUploadBytes         int64
	DefaultAssessmentScore *int
	RateLimit              *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, store ApplicantStore, intake Intake) *Server {
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}

	s := &Server{
		store:                  store,
		intake:                 intake,
		rateLimiter:            ratelimit.NewLimiter(cfg.RateLimit),
		validate:               validator.New(),
		maxUploadBytes:         maxUpload,
		defaultAssessmentScore: cfg.DefaultAssessmentScore,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Applicants
	mux.HandleFunc("GET /api/applicants", s.handleListApplicants)
	mux.HandleFunc("GET /api/applicants/export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/applicants/export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /api/applicants/{id}", s.handleGetApplicant)
	mux.HandleFunc("DELETE /api/applicants/{id}", s.handleDeleteApplicant)
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)

	// Uploads
	mux.HandleFunc("POST "+ratelimit.UploadPath, s.handleCompleteApplication)

	mux.HandleFunc("/", s.handleNotFound)

	return s.withRecovery(s.withRateLimit(s.withLogging(s.withCORS(mux))))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	log.Println("Server stopped")
	return nil
}

// Close stops background work without serving
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRecovery turns handler panics into 500 responses
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("[server] Unhandled panic on %s %s: %v", r.Method, r.URL.Path, rec)
				s.jsonResponse(w, http.StatusInternalServerError, map[string]any{
					"success": false,
					"error":   "Internal server error",
					"message": fmt.Sprint(rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleRoot returns the service banner
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message":   "AI Applicant Selector API",
		"status":    "online",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": map[string]string{
			"health":     "/api/health",
			"applicants": "/api/applicants",
			"statistics": "/api/statistics",
			"upload":     ratelimit.UploadPath,
			"exportCsv":  "/api/applicants/export.csv",
			"exportXlsx": "/api/applicants/export.xlsx",
		},
	})
}

// handleHealth reports server and database health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now, err := s.store.Ping(r.Context())
	if err != nil {
		log.Printf("[health] Database ping failed: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": now,
	})
}

// handleNotFound answers every unrouted path
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusNotFound, map[string]any{
		"success": false,
		"error":   "Endpoint not found",
		"path":    r.URL.Path,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]any{"success": false, "error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"success":   false,
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
