package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
)

// Field selects a numeric movie column.
type Field int

const (
	FieldRating Field = iota
	FieldVoters
	FieldDuration
)

func (f Field) value(m domain.Movie) float64 {
	switch f {
	case FieldVoters:
		return float64(m.Voters)
	case FieldDuration:
		return float64(m.Duration)
	default:
		return m.Rating
	}
}

func (f Field) String() string {
	switch f {
	case FieldRating:
		return "rating"
	case FieldVoters:
		return "voters"
	case FieldDuration:
		return "duration"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Order is the sort direction of grouped results.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Summary holds the scalar metrics shown above the charts.
// MeanRating and MeanDuration are NaN for an empty view.
type Summary struct {
	Count        int
	MeanRating   float64
	TotalVoters  int64
	MeanDuration float64
	Genres       int
}

// Summarize computes the scalar summary of a view.
func Summarize(v View) Summary {
	s := Summary{Count: v.Len(), MeanRating: math.NaN(), MeanDuration: math.NaN()}
	if s.Count == 0 {
		return s
	}
	var ratingSum, durationSum float64
	genres := make(map[string]struct{})
	for i := 0; i < s.Count; i++ {
		m := v.At(i)
		ratingSum += m.Rating
		durationSum += float64(m.Duration)
		s.TotalVoters += m.Voters
		genres[m.Genre] = struct{}{}
	}
	s.MeanRating = ratingSum / float64(s.Count)
	s.MeanDuration = durationSum / float64(s.Count)
	s.Genres = len(genres)
	return s
}

// GenreValue is one row of a per-genre aggregation.
type GenreValue struct {
	Genre string
	Value float64
	Count int
}

type group struct {
	genre     string
	positions []int
}

// groupByGenre partitions view positions by genre. Groups come back sorted by
// genre name; positions inside a group keep view order.
func groupByGenre(v View) []group {
	byGenre := make(map[string]int)
	var groups []group
	for i := 0; i < v.Len(); i++ {
		g := v.At(i).Genre
		k, ok := byGenre[g]
		if !ok {
			k = len(groups)
			byGenre[g] = k
			groups = append(groups, group{genre: g})
		}
		groups[k].positions = append(groups[k].positions, i)
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].genre < groups[b].genre })
	return groups
}

func groupReduce(v View, reduce func(g group) float64) []GenreValue {
	groups := groupByGenre(v)
	out := make([]GenreValue, len(groups))
	for i, g := range groups {
		out[i] = GenreValue{Genre: g.genre, Value: reduce(g), Count: len(g.positions)}
	}
	return out
}

func orderValues(rows []GenreValue, o Order) []GenreValue {
	sort.SliceStable(rows, func(a, b int) bool {
		if o == Descending {
			return rows[a].Value > rows[b].Value
		}
		return rows[a].Value < rows[b].Value
	})
	return rows
}

// GroupMean returns the mean of field per genre, ordered by the mean.
// Ties keep alphabetical genre order.
func GroupMean(v View, f Field, o Order) []GenreValue {
	rows := groupReduce(v, func(g group) float64 {
		var sum float64
		for _, p := range g.positions {
			sum += f.value(v.At(p))
		}
		return sum / float64(len(g.positions))
	})
	return orderValues(rows, o)
}

// GroupSum returns the sum of field per genre, ordered by the sum.
func GroupSum(v View, f Field, o Order) []GenreValue {
	rows := groupReduce(v, func(g group) float64 {
		var sum float64
		for _, p := range g.positions {
			sum += f.value(v.At(p))
		}
		return sum
	})
	return orderValues(rows, o)
}

// GenreCounts returns the number of movies per genre, most frequent first.
func GenreCounts(v View) []GenreValue {
	rows := groupReduce(v, func(g group) float64 { return float64(len(g.positions)) })
	return orderValues(rows, Descending)
}

// RatingHeatmap returns the mean rating per genre in alphabetical genre order.
// It is the single-column pivot of rating by genre.
func RatingHeatmap(v View) []GenreValue {
	return groupReduce(v, func(g group) float64 {
		var sum float64
		for _, p := range g.positions {
			sum += v.At(p).Rating
		}
		return sum / float64(len(g.positions))
	})
}

// GenreLeaders returns the highest rated movie of each genre, ordered by
// rating descending. Within a genre the first movie in view order wins a tie.
func GenreLeaders(v View) []domain.Movie {
	groups := groupByGenre(v)
	out := make([]domain.Movie, 0, len(groups))
	for _, g := range groups {
		best := v.At(g.positions[0])
		for _, p := range g.positions[1:] {
			if m := v.At(p); m.Rating > best.Rating {
				best = m
			}
		}
		out = append(out, best)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Rating > out[b].Rating })
	return out
}

func firstK(movies []domain.Movie, k int) []domain.Movie {
	if k < 0 {
		k = 0
	}
	if k < len(movies) {
		movies = movies[:k]
	}
	return movies
}

// TopK returns the k most popular movies: voters descending, then rating
// descending. Ties beyond both keys keep view order.
func TopK(v View, k int) []domain.Movie {
	movies := v.Movies()
	sort.SliceStable(movies, func(a, b int) bool {
		if movies[a].Voters != movies[b].Voters {
			return movies[a].Voters > movies[b].Voters
		}
		return movies[a].Rating > movies[b].Rating
	})
	return firstK(movies, k)
}

// Shortest returns the k movies with the smallest duration.
func Shortest(v View, k int) []domain.Movie {
	movies := v.Movies()
	sort.SliceStable(movies, func(a, b int) bool { return movies[a].Duration < movies[b].Duration })
	return firstK(movies, k)
}

// Longest returns the k movies with the largest duration.
func Longest(v View, k int) []domain.Movie {
	movies := v.Movies()
	sort.SliceStable(movies, func(a, b int) bool { return movies[a].Duration > movies[b].Duration })
	return firstK(movies, k)
}

// Bin is one bucket of a histogram. Upper is inclusive only for the last bin.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// DefaultHistogramBins is the bin count used for the rating distribution.
const DefaultHistogramBins = 20

// RatingHistogram splits the observed rating span of the view into equal-width
// bins. A view whose ratings are all equal yields a single bin.
func RatingHistogram(v View, bins int) []Bin {
	n := v.Len()
	if n == 0 || bins <= 0 {
		return nil
	}
	lo, hi := v.At(0).Rating, v.At(0).Rating
	for i := 1; i < n; i++ {
		r := v.At(i).Rating
		lo = min(lo, r)
		hi = max(hi, r)
	}
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: n}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for i := 0; i < n; i++ {
		b := int((v.At(i).Rating - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		out[b].Count++
	}
	return out
}

// SortOption names the orderings offered by the advanced filter.
type SortOption string

const (
	SortRating   SortOption = "rating"
	SortVotes    SortOption = "votes"
	SortDuration SortOption = "duration"
	SortTitle    SortOption = "title"
)

// SortOptions lists the orderings in display order.
func SortOptions() []SortOption {
	return []SortOption{SortRating, SortVotes, SortDuration, SortTitle}
}

// ParseSortOption parses a sort option name, ignoring case and surrounding space.
func ParseSortOption(s string) (SortOption, error) {
	opt := SortOption(strings.ToLower(strings.TrimSpace(s)))
	for _, o := range SortOptions() {
		if o == opt {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort option %q", ErrMalformedSpec, s)
}

// Sort returns the view's rows ordered by opt. Rating, votes and duration sort
// descending; title sorts ascending. Equal keys keep view order.
func Sort(v View, opt SortOption) []domain.Movie {
	movies := v.Movies()
	var less func(a, b domain.Movie) bool
	switch opt {
	case SortVotes:
		less = func(a, b domain.Movie) bool { return a.Voters > b.Voters }
	case SortDuration:
		less = func(a, b domain.Movie) bool { return a.Duration > b.Duration }
	case SortTitle:
		less = func(a, b domain.Movie) bool { return a.Title < b.Title }
	default:
		less = func(a, b domain.Movie) bool { return a.Rating > b.Rating }
	}
	sort.SliceStable(movies, func(i, j int) bool { return less(movies[i], movies[j]) })
	return movies
}
