package domain

import "fmt"

// Dataset is the ordered, read-only collection of movies loaded at startup.
// It is safe for concurrent readers because nothing mutates it after construction.
type Dataset struct {
	movies []Movie
	genres []string
	bounds Bounds
}

// NewDataset validates and copies movies into a Dataset.
func NewDataset(movies []Movie) (*Dataset, error) {
	ds := &Dataset{movies: make([]Movie, len(movies))}
	seen := make(map[string]struct{})
	for i, m := range movies {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ds.movies[i] = m
		if _, ok := seen[m.Genre]; !ok {
			seen[m.Genre] = struct{}{}
			ds.genres = append(ds.genres, m.Genre)
		}
		ds.observe(i, m)
	}
	return ds, nil
}

func (d *Dataset) observe(i int, m Movie) {
	b := &d.bounds
	if i == 0 {
		*b = Bounds{
			RatingMin: m.Rating, RatingMax: m.Rating,
			VotersMin: m.Voters, VotersMax: m.Voters,
			DurationMin: m.Duration, DurationMax: m.Duration,
		}
		return
	}
	b.RatingMin = min(b.RatingMin, m.Rating)
	b.RatingMax = max(b.RatingMax, m.Rating)
	b.VotersMin = min(b.VotersMin, m.Voters)
	b.VotersMax = max(b.VotersMax, m.Voters)
	b.DurationMin = min(b.DurationMin, m.Duration)
	b.DurationMax = max(b.DurationMax, m.Duration)
}

// Len returns the number of movies.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.movies)
}

// At returns the movie at position i.
func (d *Dataset) At(i int) Movie {
	return d.movies[i]
}

// Movies returns a copy of all rows in load order.
func (d *Dataset) Movies() []Movie {
	if d == nil {
		return nil
	}
	out := make([]Movie, len(d.movies))
	copy(out, d.movies)
	return out
}

// Genres returns the distinct genres in first-seen order.
func (d *Dataset) Genres() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.genres))
	copy(out, d.genres)
	return out
}

// Bounds returns the observed min/max per numeric field. Zero for an empty dataset.
func (d *Dataset) Bounds() Bounds {
	if d == nil {
		return Bounds{}
	}
	return d.bounds
}
