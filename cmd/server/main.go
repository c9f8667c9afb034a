package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clark-Hu/movies-dashboard/internal/config"
	"github.com/Clark-Hu/movies-dashboard/internal/dashboard"
	httpserver "github.com/Clark-Hu/movies-dashboard/internal/http"
	"github.com/Clark-Hu/movies-dashboard/internal/logging"
	"github.com/Clark-Hu/movies-dashboard/internal/session"
	"github.com/Clark-Hu/movies-dashboard/internal/source"
)

const sessionGCInterval = 10 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Config{}).Fatal().Err(err).Msg("config error")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout}).
		With().Str("service", "movies-dashboard").Logger()

	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DatasetLoadTimeoutSecs)*time.Second)
	defer cancel()

	handle, err := source.Open(loadCtx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open data source")
	}
	defer handle.Close()

	ds, err := source.LoadDataset(loadCtx, handle.Source, handle.Name, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load dataset")
	}
	cancel()

	sessions, err := session.OpenBadger(cfg.SessionStorePath, time.Duration(cfg.SessionTTLSecs)*time.Second, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open session store")
	}
	defer sessions.Close()
	go sessions.RunGC(ctx, sessionGCInterval)

	svc := dashboard.NewService(ds, logger)
	nav := dashboard.NewNavigator(sessions, logger)
	server := httpserver.New(cfg, handle, svc, nav, logger)

	logger.Info().Str("port", cfg.Port).Int("movies", ds.Len()).Str("source", handle.Name).Msg("starting server")

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("server stopped")
}
