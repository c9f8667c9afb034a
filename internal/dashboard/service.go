// Package dashboard composes engine calls into the two dashboard pages and
// tracks which page each session is on.
package dashboard

import (
	"cmp"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
	"github.com/Clark-Hu/movies-dashboard/internal/engine"
	"github.com/Clark-Hu/movies-dashboard/internal/metrics"
)

// EmptyWarning is shown by the advanced page when nothing matches.
const EmptyWarning = "No movies match your filter criteria. Please try different filters."

const (
	topMoviesLimit = 10
	extremesLimit  = 5
)

// Service answers page requests against a loaded dataset.
type Service struct {
	ds     *domain.Dataset
	logger zerolog.Logger
}

// NewService builds a Service over ds. ds is never modified.
func NewService(ds *domain.Dataset, logger zerolog.Logger) *Service {
	return &Service{ds: ds, logger: logger.With().Str("component", "dashboard").Logger()}
}

// Dataset returns the dataset the service reads from.
func (s *Service) Dataset() *domain.Dataset { return s.ds }

// OverviewQuery carries the sidebar filters of the overview page. Nil bounds
// default to the dataset's observed min/max; nil Genres means every genre.
type OverviewQuery struct {
	Genres      []string
	RatingMin   *float64
	RatingMax   *float64
	VotesMin    *int64
	VotesMax    *int64
	DurationMin *int
	DurationMax *int
}

// bounded fills a missing end of [lo, hi] from the observed span, widened so
// that a single supplied bound outside the span still forms a valid range.
func bounded[T cmp.Ordered](lo, hi *T, observedLo, observedHi T) engine.Range[T] {
	switch {
	case lo != nil && hi != nil:
		return engine.Between(*lo, *hi)
	case lo != nil:
		return engine.Between(*lo, max(observedHi, *lo))
	case hi != nil:
		return engine.Between(min(observedLo, *hi), *hi)
	}
	return engine.Between(observedLo, observedHi)
}

// OverviewSpec resolves q against the dataset defaults. Only a range whose
// two supplied ends are inverted is malformed.
func (s *Service) OverviewSpec(q OverviewQuery) (engine.FilterSpec, error) {
	b := s.ds.Bounds()
	genres := q.Genres
	if genres == nil {
		genres = s.ds.Genres()
	}
	return engine.NewFilterSpec(
		genres,
		bounded(q.RatingMin, q.RatingMax, b.RatingMin, b.RatingMax),
		bounded(q.VotesMin, q.VotesMax, b.VotersMin, b.VotersMax),
		bounded(q.DurationMin, q.DurationMax, b.DurationMin, b.DurationMax),
	)
}

// Overview is every derived view shown on the overview page.
type Overview struct {
	Summary           engine.Summary
	GenreDistribution []engine.GenreValue
	RatingHistogram   []engine.Bin
	DurationByGenre   []engine.GenreValue
	VotesByGenreMean  []engine.GenreValue
	TopMovies         []domain.Movie
	GenreLeaders      []domain.Movie
	RatingHeatmap     []engine.GenreValue
	Correlation       float64
	Shortest          []domain.Movie
	Longest           []domain.Movie
	VotesByGenre      []engine.GenreValue
}

// Overview filters the dataset and computes the overview page.
func (s *Service) Overview(q OverviewQuery) (Overview, error) {
	spec, err := s.OverviewSpec(q)
	if err != nil {
		return Overview{}, err
	}
	v := engine.Filter(s.ds, spec)
	metrics.RecordFilteredView(PageOverview.String(), v.Len())
	return Overview{
		Summary:           engine.Summarize(v),
		GenreDistribution: engine.GenreCounts(v),
		RatingHistogram:   engine.RatingHistogram(v, engine.DefaultHistogramBins),
		DurationByGenre:   engine.GroupMean(v, engine.FieldDuration, engine.Ascending),
		VotesByGenreMean:  engine.GroupMean(v, engine.FieldVoters, engine.Descending),
		TopMovies:         engine.TopK(v, topMoviesLimit),
		GenreLeaders:      engine.GenreLeaders(v),
		RatingHeatmap:     engine.RatingHeatmap(v),
		Correlation:       engine.Correlation(v),
		Shortest:          engine.Shortest(v, extremesLimit),
		Longest:           engine.Longest(v, extremesLimit),
		VotesByGenre:      engine.GroupSum(v, engine.FieldVoters, engine.Descending),
	}, nil
}

// ExploreQuery carries the advanced page controls. Nil Genres means every genre.
type ExploreQuery struct {
	Genres    []string
	MinRating float64
	MinVotes  int64
	Duration  engine.DurationBucket
	Sort      engine.SortOption
}

// ExploreView returns the rows matching q in dataset order.
func (s *Service) ExploreView(q ExploreQuery) (engine.View, error) {
	genres := q.Genres
	if genres == nil {
		genres = s.ds.Genres()
	}
	spec, err := engine.NewBucketFilterSpec(genres, engine.AtLeastRating(q.MinRating), engine.AtLeastVoters(q.MinVotes), q.Duration)
	if err != nil {
		return engine.View{}, err
	}
	return engine.Filter(s.ds, spec), nil
}

// Explore is the advanced page result.
type Explore struct {
	Summary           engine.Summary
	Movies            []domain.Movie
	GenreDistribution []engine.GenreValue
	RatingHistogram   []engine.Bin
	Warning           string
}

// Explore filters, sorts and summarizes for the advanced page.
func (s *Service) Explore(q ExploreQuery) (Explore, error) {
	v, err := s.ExploreView(q)
	if err != nil {
		return Explore{}, err
	}
	metrics.RecordFilteredView(PageAdvancedFilter.String(), v.Len())
	out := Explore{
		Summary:           engine.Summarize(v),
		Movies:            engine.Sort(v, q.Sort),
		GenreDistribution: engine.GenreCounts(v),
		RatingHistogram:   engine.RatingHistogram(v, engine.DefaultHistogramBins),
	}
	if v.Len() == 0 {
		out.Warning = EmptyWarning
	}
	return out, nil
}
