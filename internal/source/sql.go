package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
)

const (
	DriverSQLite = "sqlite3"
	DriverDuckDB = "duckdb"
)

// rowid exists in both SQLite and DuckDB and follows insertion order.
const loadQuery = `SELECT title, genre, rating, voters, duration FROM imdb_movies ORDER BY rowid`

// SQLSource reads movies from a file-backed database through database/sql.
type SQLSource struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens dsn with driver and verifies the connection.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLSource, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return NewSQLSource(db, driver), nil
}

// NewSQLSource wraps an already opened database.
func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{db: db, driver: driver}
}

// LoadAll returns every movie in insertion order.
func (s *SQLSource) LoadAll(ctx context.Context) ([]domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx, loadQuery)
	if err != nil {
		return nil, fmt.Errorf("query movies (%s): %w", s.driver, err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		var (
			m        domain.Movie
			duration int64
		)
		if err := rows.Scan(&m.Title, &m.Genre, &m.Rating, &m.Voters, &duration); err != nil {
			return nil, fmt.Errorf("scan movie (%s): %w", s.driver, err)
		}
		m.Duration = int(duration)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies (%s): %w", s.driver, err)
	}
	return movies, nil
}

// HealthCheck pings the database.
func (s *SQLSource) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *SQLSource) Close() error {
	return s.db.Close()
}
