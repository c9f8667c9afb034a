package dashboard

import (
	"github.com/Clark-Hu/movies-dashboard/internal/domain"
	"github.com/Clark-Hu/movies-dashboard/internal/engine"
)

// Preset is a named combination of advanced-page controls. Nil Genres means all.
type Preset struct {
	Name      string
	Genres    []string
	MinRating float64
	MinVotes  int64
	Duration  engine.DurationBucket
}

// Presets are the example filter combinations offered on the advanced page.
var Presets = []Preset{
	{Name: "Popular Action Movies", Genres: []string{"Action"}, MinRating: 7.0, MinVotes: 100_000, Duration: engine.BucketAll},
	{Name: "Highly Rated Short Films", MinRating: 8.0, MinVotes: 10_000, Duration: engine.BucketShort},
	{Name: "Blockbuster Long Movies", MinRating: 7.5, MinVotes: 500_000, Duration: engine.BucketLong},
}

// Query converts the preset into an advanced-page query.
func (p Preset) Query(sort engine.SortOption) ExploreQuery {
	return ExploreQuery{Genres: p.Genres, MinRating: p.MinRating, MinVotes: p.MinVotes, Duration: p.Duration, Sort: sort}
}

// Options describes the controls a front end needs to render.
type Options struct {
	Genres      []string
	Bounds      domain.Bounds
	Buckets     []engine.DurationBucket
	SortOptions []engine.SortOption
	Presets     []Preset
	Movies      int
}

// Options returns control choices and slider defaults for the dataset.
func (s *Service) Options() Options {
	return Options{
		Genres:      s.ds.Genres(),
		Bounds:      s.ds.Bounds(),
		Buckets:     engine.DurationBuckets(),
		SortOptions: engine.SortOptions(),
		Presets:     Presets,
		Movies:      s.ds.Len(),
	}
}
