package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-dashboard/internal/config"
	"github.com/Clark-Hu/movies-dashboard/internal/repository"
	"github.com/Clark-Hu/movies-dashboard/internal/store"
)

// Handle is an opened source together with its health check and cleanup.
type Handle struct {
	Source Source
	// Name is the backend kind: postgres, sqlite or duckdb.
	Name string

	health func(context.Context) error
	close  func()
}

// HealthCheck verifies the backing database is still reachable.
func (h *Handle) HealthCheck(ctx context.Context) error {
	if h == nil || h.health == nil {
		return fmt.Errorf("source not initialized")
	}
	return h.health(ctx)
}

// Close releases the backing database.
func (h *Handle) Close() {
	if h != nil && h.close != nil {
		h.close()
	}
}

// Open connects to the database named by cfg.DBURL. The URL scheme selects
// the backend: postgres:// or postgresql:// (pgx pool), sqlite://<path>,
// duckdb://<path>.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Handle, error) {
	scheme, rest, ok := strings.Cut(cfg.DBURL, "://")
	if !ok {
		return nil, fmt.Errorf("DB_URL %q has no scheme", cfg.DBURL)
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		st, err := store.New(ctx, cfg.DBURL, store.OptionsFromConfig(cfg, logger))
		if err != nil {
			return nil, err
		}
		return &Handle{
			Source: repository.New(st).Movies,
			Name:   "postgres",
			health: st.HealthCheck,
			close:  st.Close,
		}, nil
	case "sqlite", "sqlite3":
		return openSQL(ctx, DriverSQLite, "sqlite", rest, logger)
	case "duckdb":
		return openSQL(ctx, DriverDuckDB, "duckdb", rest, logger)
	default:
		return nil, fmt.Errorf("DB_URL scheme %q is not supported", scheme)
	}
}

func openSQL(ctx context.Context, driver, name, dsn string, logger zerolog.Logger) (*Handle, error) {
	src, err := OpenSQL(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("component", "source").Str("driver", driver).Str("path", dsn).Msg("database opened")
	return &Handle{
		Source: src,
		Name:   name,
		health: src.HealthCheck,
		close: func() {
			if err := src.Close(); err != nil {
				logger.Warn().Err(err).Str("driver", driver).Msg("close database")
			}
		},
	}, nil
}
