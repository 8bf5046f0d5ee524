package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"laptops/internal/api"
	"laptops/internal/config"
	"laptops/internal/engine"
	"laptops/internal/logger"
	"laptops/internal/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	// 1. Echo starts with no data; the API answers 503 until the load finishes
	h := api.NewHandler(nil, m)
	e := api.NewServer(h)
	e.HidePort = true
	e.Logger.SetLevel(logger.EchoLevel(cfg.Logging.Level))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	g, ctx := errgroup.WithContext(ctx)

	// 2. Load in the background
	g.Go(func() error {
		lg := logger.WithComponent(logger.ComponentLoader)
		lg.Info("loading inventory", "path", cfg.Data.Path, "encoding", cfg.Data.Encoding)
		t0 := time.Now()

		inv, err := engine.Load(cfg.Data.Path, engine.WithEncoding(cfg.Data.Encoding), engine.WithLogger(lg))
		if err != nil {
			return fmt.Errorf("loading inventory: %w", err)
		}
		h.SetInventory(inv)

		lg.Info("inventory ready", "records", inv.Len(), "elapsed", time.Since(t0))
		return nil
	})

	// 3. Serve
	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.WithComponent(logger.ComponentServer).Info("server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
