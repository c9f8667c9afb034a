// Package source performs the one-time bulk read of the movies table.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
	"github.com/Clark-Hu/movies-dashboard/internal/metrics"
)

// ErrSourceUnavailable wraps any failure of the startup load. It is fatal.
var ErrSourceUnavailable = errors.New("source: movies unavailable")

// Source returns every movie record in storage order.
type Source interface {
	LoadAll(ctx context.Context) ([]domain.Movie, error)
}

// LoadDataset runs the bulk read once and builds the in-memory dataset.
// name labels logs and metrics.
func LoadDataset(ctx context.Context, src Source, name string, logger zerolog.Logger) (*domain.Dataset, error) {
	start := time.Now()
	ds, err := load(ctx, src)
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(name, elapsed, ds.Len(), err)
	if err != nil {
		logger.Error().Err(err).Str("source", name).Dur("elapsed", elapsed).Msg("dataset load failed")
		return nil, err
	}
	logger.Info().
		Str("source", name).
		Int("records", ds.Len()).
		Int("genres", len(ds.Genres())).
		Dur("elapsed", elapsed).
		Msg("dataset loaded")
	return ds, nil
}

func load(ctx context.Context, src Source) (*domain.Dataset, error) {
	movies, err := src.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	ds, err := domain.NewDataset(movies)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return ds, nil
}
