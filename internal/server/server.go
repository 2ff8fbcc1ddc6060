package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Store is the persistence the handlers need. *db.DB implements it.
type Store interface {
	Ping(ctx context.Context) error

	CreateResume(ctx context.Context, data types.ResumeData) (*types.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	ListResumes(ctx context.Context) ([]types.Resume, error)
	UpdateResume(ctx context.Context, id uuid.UUID, data types.ResumeData) (*types.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error

	CreateCoverLetter(ctx context.Context, data types.CoverLetterData) (*types.CoverLetter, error)
	GetCoverLetter(ctx context.Context, id uuid.UUID) (*types.CoverLetter, error)
	ListCoverLetters(ctx context.Context) ([]types.CoverLetter, error)
	UpdateCoverLetter(ctx context.Context, id uuid.UUID, data types.CoverLetterData) (*types.CoverLetter, error)
	DeleteCoverLetter(ctx context.Context, id uuid.UUID) error
}

// Generator produces AI-polished documents. *llm.Generator implements it.
type Generator interface {
	GenerateResume(ctx context.Context, data types.ResumeData) (types.ResumeData, error)
	GenerateCoverLetter(ctx context.Context, data types.ResumeData, jobDescription string) (*llm.CoverLetterDraft, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	generator   Generator
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port      int
	Store     Store
	Generator Generator // nil disables the generate endpoints
	RateLimit *ratelimit.Config
	Logger    *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       cfg.Store,
		generator:   cfg.Generator,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      cfg.Logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation waits on the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Screen submission used by the interactive wizard
	mux.HandleFunc("POST /api/resumes", s.handleSubmitResume)

	mux.HandleFunc("GET /resume", s.handleListResumes)
	mux.HandleFunc("POST /resume", s.handleCreateResume)
	mux.HandleFunc("POST /resume/generate", s.handleGenerateResume)
	mux.HandleFunc("GET /resume/{id}", s.handleGetResume)
	mux.HandleFunc("PUT /resume/{id}", s.handleUpdateResume)
	mux.HandleFunc("DELETE /resume/{id}", s.handleDeleteResume)

	mux.HandleFunc("GET /cover-letter", s.handleListCoverLetters)
	mux.HandleFunc("POST /cover-letter", s.handleCreateCoverLetter)
	mux.HandleFunc("POST /cover-letter/generate", s.handleGenerateCoverLetter)
	mux.HandleFunc("GET /cover-letter/{id}", s.handleGetCoverLetter)
	mux.HandleFunc("PUT /cover-letter/{id}", s.handleUpdateCoverLetter)
	mux.HandleFunc("DELETE /cover-letter/{id}", s.handleDeleteCoverLetter)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"generation": s.generator != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error body carrying a code and a human-readable message.
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, map[string]string{"error": code, "message": message})
}

// fail maps err to a status and writes it. Internal errors are logged and
// replaced by a generic message.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		message = "An internal error occurred."
	}
	s.errorResponse(w, status, errorCode(status), message)
}

// decodeJSON reads a size-limited JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID parses the {id} path value as a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, kind string) (uuid.UUID, bool) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		s.fail(w, &ErrNotFound{Kind: kind, ID: raw})
		return uuid.Nil, false
	}
	return id, true
}

// clientID extracts the client identifier from the request.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())+1))
	}
	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))
	s.errorResponse(w, http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded. Please try again later.")
}
