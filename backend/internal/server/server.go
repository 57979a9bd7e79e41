// Package server exposes the carrier relationship dashboard over HTTP.
//
// Every request works on an immutable index taken from the content-addressed
// cache, plus (for session routes) a copy of that session's state. Handlers never
// mutate shared data, so no request can observe another session's selections.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/config"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/indexcache"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/logging"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/observability"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/session"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/tableio"
	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/watch"
)

// PreloadDatasetID resolves to the dataset loaded from config.Preload.Path.
const PreloadDatasetID = "preload"

const shutdownTimeout = 5 * time.Second

// Server wires the cache, sessions and metrics into a gin engine.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	cache    *indexcache.Cache
	sessions *session.Store
	metrics  *observability.Metrics
	limiter  *rate.Limiter
	engine   *gin.Engine
}

// New builds a server. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := observability.NewMetrics()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		cache:    indexcache.New(indexcache.WithObserver(metrics)),
		sessions: session.NewStore(),
		metrics:  metrics,
	}
	if cfg.Server.UploadRatePerSec > 0 {
		burst := cfg.Server.UploadBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.UploadRatePerSec), burst)
	}

	router := gin.New()
	router.Use(gin.Recovery(), logging.GinMiddleware(logger))
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	SetupRoutes(router, s)
	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Cache returns the dataset cache.
func (s *Server) Cache() *indexcache.Cache { return s.cache }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Preload.Path != "" {
		stop, err := s.startPreload(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting carrierview server", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down carrierview server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

// startPreload loads the configured file once and reloads it on change.
func (s *Server) startPreload(ctx context.Context) (func(), error) {
	path := s.cfg.Preload.Path
	if err := s.reloadPreload(ctx, path); err != nil {
		// a broken file at start is not fatal; the next good save replaces it
		s.logger.Warn("initial preload failed", zap.String("path", path), zap.Error(err))
	}
	w, err := watch.New(path, s.cfg.Preload.Debounce, func(p string) {
		if err := s.reloadPreload(ctx, p); err != nil {
			s.logger.Warn("preload reload failed, keeping previous dataset", zap.String("path", p), zap.Error(err))
		}
	}, s.logger)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w.Stop, nil
}

// reloadPreload indexes path and points PreloadDatasetID at it.
func (s *Server) reloadPreload(ctx context.Context, path string) error {
	ft, err := tableio.FileTypeFromName(path)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ds, cached, err := s.cache.Load(ctx, raw, ft)
	if err != nil {
		return err
	}
	s.cache.Alias(PreloadDatasetID, ds.ID)
	s.logger.Info("preload dataset ready",
		zap.String("path", path),
		zap.String("dataset_id", ds.ID),
		zap.Bool("cached", cached),
		zap.Int("carriers", len(ds.Index.Carriers)))
	return nil
}
