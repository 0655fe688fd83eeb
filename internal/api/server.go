// Package api serves price predictions over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"carprice/internal/adapter"
	"carprice/internal/config"
	"carprice/internal/logger"
	"carprice/internal/model"
	"carprice/internal/observability/metrics"
)

// Server exposes the prediction adapter over HTTP.
type Server struct {
	echo    *echo.Echo
	cfg     config.ServerConfig
	adapter *adapter.Adapter
	model   string
	metrics *metrics.PredictionMetrics
	logger  *logger.Logger
}

// New wires routes and middleware around a loaded backend. Metrics are
// registered on registry and served from it at /metrics.
func New(cfg config.ServerConfig, backend model.Backend, registry *prometheus.Registry, log *logger.Logger) (*Server, error) {
	m, err := metrics.NewPredictionMetrics(registry)
	if err != nil {
		return nil, err
	}

	m.SetModel(backend.Name())

	s := &Server{
		echo:    echo.New(),
		cfg:     cfg,
		adapter: adapter.New(backend),
		model:   backend.Name(),
		metrics: m,
		logger:  log.With("component", "api"),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: newCorrelationID,
	}))
	s.echo.Use(middleware.BodyLimit("1M"))
	s.echo.Use(s.requestLogger())

	s.echo.POST("/predict", s.handlePredict)
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return s, nil
}

// ServeHTTP makes Server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.echo,
		ReadTimeout:  s.cfg.ReadTimeout(),
		WriteTimeout: s.cfg.WriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", "address", ln.Addr().String(), "model", s.model)

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()

		s.logger.Info("server shutting down")

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}

		return nil
	})

	return g.Wait()
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			s.logger.Debug("request handled",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return nil
		}
	}
}
