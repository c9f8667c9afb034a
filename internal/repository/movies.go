package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
)

// MoviesRepository reads the movies table.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    title,
    genre,
    rating,
    voters,
    duration
`

// LoadAll returns every movie in insertion order.
func (r *MoviesRepository) LoadAll(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM imdb_movies ORDER BY id`, movieColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var (
		movie    domain.Movie
		duration int32
	)
	if err := row.Scan(&movie.Title, &movie.Genre, &movie.Rating, &movie.Voters, &duration); err != nil {
		return domain.Movie{}, fmt.Errorf("scan movie: %w", err)
	}
	movie.Duration = int(duration)
	return movie, nil
}
