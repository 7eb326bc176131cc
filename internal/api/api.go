package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/isaacjstriker/blockdrop/games/blockdrop"
	"github.com/isaacjstriker/blockdrop/internal/config"
	"github.com/isaacjstriker/blockdrop/internal/database"
	"go.uber.org/zap"
)

// APIServer represents the main server for the application
type APIServer struct {
	listenAddr string
	db         *database.DB
	config     *config.Config
	logger     *zap.Logger
	rules      blockdrop.Rules
	pieces     func() blockdrop.PieceSource
	now        func() time.Time

	// submitMu makes the cooldown check and the insert one step
	submitMu sync.Mutex
}

// Option customises an APIServer
type Option func(*APIServer)

// WithPieces sets how each web game gets its piece sequence
func WithPieces(fn func() blockdrop.PieceSource) Option {
	return func(s *APIServer) { s.pieces = fn }
}

// WithNow sets the clock used for submission cooldowns
func WithNow(fn func() time.Time) Option {
	return func(s *APIServer) { s.now = fn }
}

// NewAPIServer creates a new APIServer instance
func NewAPIServer(db *database.DB, cfg *config.Config, logger *zap.Logger, rules blockdrop.Rules, opts ...Option) *APIServer {
	s := &APIServer{
		listenAddr: cfg.ListenAddr(),
		db:         db,
		config:     cfg,
		logger:     logger,
		rules:      rules,
		pieces: func() blockdrop.PieceSource {
			return blockdrop.NewCatalog(rand.NewSource(time.Now().UnixNano()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler for the server
func (s *APIServer) Routes() http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/register", s.handleRegister)
	router.HandleFunc("POST /api/login", s.handleLogin)
	router.HandleFunc("POST /api/scores", requireAuth(s, s.handleSubmitScore))
	router.HandleFunc("GET /api/leaderboard", s.handleGetLeaderboard)
	router.HandleFunc("GET /api/scores/total", s.handleGetTotal)
	router.HandleFunc("GET /api/health", s.handleHealth)

	router.HandleFunc("GET /ws/game", s.handleGameConnection)

	return s.logRequests(router)
}

// Start runs the HTTP server until ctx is cancelled
func (s *APIServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", zap.String("addr", s.listenAddr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.logger.Error("database ping failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack hands the connection to the websocket upgrader
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *APIServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}
