package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidMovie indicates a record that violates the movie field constraints.
var ErrInvalidMovie = errors.New("domain: invalid movie")

// MaxRating is the upper bound of the rating scale.
const MaxRating = 10.0

// Movie is a single row of the movies table. Values are immutable once loaded.
type Movie struct {
	Title    string
	Genre    string
	Rating   float64
	Voters   int64
	Duration int // minutes
}

// Validate checks the field constraints of a movie record.
func (m Movie) Validate() error {
	switch {
	case strings.TrimSpace(m.Genre) == "":
		return fmt.Errorf("%w: %q has no genre", ErrInvalidMovie, m.Title)
	case math.IsNaN(m.Rating) || m.Rating < 0 || m.Rating > MaxRating:
		return fmt.Errorf("%w: %q rating %v outside [0,10]", ErrInvalidMovie, m.Title, m.Rating)
	case m.Voters < 0:
		return fmt.Errorf("%w: %q has negative voters %d", ErrInvalidMovie, m.Title, m.Voters)
	case m.Duration <= 0:
		return fmt.Errorf("%w: %q duration %d must be positive", ErrInvalidMovie, m.Title, m.Duration)
	}
	return nil
}

// Bounds holds the observed min/max of each numeric field of a dataset.
type Bounds struct {
	RatingMin   float64
	RatingMax   float64
	VotersMin   int64
	VotersMax   int64
	DurationMin int
	DurationMax int
}
