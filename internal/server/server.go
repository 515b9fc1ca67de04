// Package server exposes tag normalization, request scoring and the request board over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/madlig/mygameon/internal/contract"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may take after the context is done.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP API of MyGameON.
type Server struct {
	echo    *echo.Echo
	cfg     *contract.Config
	mgr     contract.StoreManager
	logger  *zap.Logger
	metrics *Metrics
}

// New builds the server and registers its routes. mgr may be nil, in which
// case the board endpoint reports that no request store is configured.
func New(cfg *contract.Config, mgr contract.StoreManager, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		cfg:     cfg,
		mgr:     mgr,
		logger:  logger,
		metrics: NewMetrics(),
	}

	e.Use(middleware.Recover())
	e.Use(s.metrics.Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := s.echo.Group("/api/v1")
	api.POST("/tags/normalize", s.handleNormalizeTags)
	api.POST("/tags/chips", s.handleTagChips)
	api.GET("/tags/vocabulary", s.handleVocabulary)
	api.POST("/priority", s.handlePriority)
	api.GET("/priority/config", s.handlePriorityConfig)
	api.GET("/requests/board", s.handleBoard)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on cfg.Addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.cfg.Addr))
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
