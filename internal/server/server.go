// Package server provides the HTTP REST API for the success predictor.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/success-predictor/internal/cache"
	"github.com/jonathan/success-predictor/internal/config"
	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/metrics"
	"github.com/jonathan/success-predictor/internal/prediction"
	"github.com/jonathan/success-predictor/internal/server/ratelimit"
	"github.com/jonathan/success-predictor/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PredictFunc computes a prediction. prediction.Predict in production.
type PredictFunc func(types.AssessmentInput) types.PredictionResult

// Deps are the collaborators the server needs. Only Logger is required; nil Metrics,
// Cache or Gatherer disable the corresponding feature.
type Deps struct {
	Logger   logging.Logger
	Metrics  *metrics.Metrics
	Cache    cache.PredictionCache
	Gatherer prometheus.Gatherer
	Predict  PredictFunc
}

// Server represents the HTTP server
type Server struct {
	cfg         config.Config
	logger      logging.Logger
	metrics     *metrics.Metrics
	cache       cache.PredictionCache
	predict     PredictFunc
	rateLimiter *ratelimit.Limiter
	mux         *http.ServeMux
	handler     http.Handler
	httpServer  *http.Server
}

// New creates a new server instance
func New(cfg config.Config, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.NewNop()
	}
	if deps.Predict == nil {
		deps.Predict = prediction.Predict
	}

	var exempt []string
	if cfg.Metrics.Enabled {
		exempt = append(exempt, cfg.Metrics.Path)
	}

	s := &Server{
		cfg:         cfg,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
		cache:       deps.Cache,
		predict:     deps.Predict,
		rateLimiter: ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit, exempt...)),
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /api/prediction", s.handlePrediction)
	s.mux.HandleFunc("GET /api/ping", s.handlePing)
	s.mux.HandleFunc("GET /api/demo", s.handleDemo)
	s.mux.HandleFunc("POST /api/assessment/validate", s.handleValidateAssessment)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	if cfg.Metrics.Enabled && deps.Gatherer != nil {
		s.mux.Handle("GET "+cfg.Metrics.Path, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	// The request id middleware is the only one that clones the request, so the
	// route pattern set by the mux is visible to every layer inside it.
	s.handler = s.withRequestID(s.withLogging(s.withMetrics(s.withRecovery(s.withCORS(s.withRateLimit(s.mux))))))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", logging.Fields{"addr": ln.Addr().String()})
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", nil)
	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped", nil)
	return nil
}
