package engine

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
)

// ErrMalformedSpec is returned when a filter spec cannot be constructed.
var ErrMalformedSpec = errors.New("engine: malformed filter spec")

// Range is an inclusive [Min, Max] interval.
type Range[T cmp.Ordered] struct {
	Min T
	Max T
}

// Between builds an inclusive range. Validity is checked when the range is used in a spec.
func Between[T cmp.Ordered](lo, hi T) Range[T] {
	return Range[T]{Min: lo, Max: hi}
}

// AtLeastRating is the rating range used by "minimum rating" controls.
func AtLeastRating(lo float64) Range[float64] {
	return Range[float64]{Min: lo, Max: domain.MaxRating}
}

// AtLeastVoters is the voters range used by "minimum votes" controls.
func AtLeastVoters(lo int64) Range[int64] {
	return Range[int64]{Min: lo, Max: math.MaxInt64}
}

// Contains reports whether v lies in the range, bounds included.
func (r Range[T]) Contains(v T) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range[T]) wellFormed() bool {
	// written this way so NaN bounds are rejected
	return r.Min <= r.Max
}

// DurationBucket is a named duration band used by the advanced filter.
type DurationBucket int

const (
	BucketAll DurationBucket = iota
	BucketShort
	BucketMedium
	BucketLong
)

const (
	shortLimit = 120
	longLimit  = 180
)

var bucketNames = map[DurationBucket]string{
	BucketAll:    "all",
	BucketShort:  "short",
	BucketMedium: "medium",
	BucketLong:   "long",
}

// DurationBuckets lists the buckets in display order.
func DurationBuckets() []DurationBucket {
	return []DurationBucket{BucketAll, BucketShort, BucketMedium, BucketLong}
}

// ParseDurationBucket parses a bucket name, ignoring case and surrounding space.
func ParseDurationBucket(s string) (DurationBucket, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for b, n := range bucketNames {
		if n == name {
			return b, nil
		}
	}
	return BucketAll, fmt.Errorf("%w: unknown duration bucket %q", ErrMalformedSpec, s)
}

func (b DurationBucket) String() string {
	if n, ok := bucketNames[b]; ok {
		return n
	}
	return fmt.Sprintf("DurationBucket(%d)", int(b))
}

// Contains reports whether a duration in minutes falls in the bucket.
func (b DurationBucket) Contains(minutes int) bool {
	switch b {
	case BucketShort:
		return minutes < shortLimit
	case BucketMedium:
		return minutes >= shortLimit && minutes <= longLimit
	case BucketLong:
		return minutes > longLimit
	default:
		return true
	}
}

// FilterSpec is the conjunction of per-field predicates applied by Filter.
// The duration predicate is either an explicit range or a bucket, never both;
// the constructors are the only way to build one.
type FilterSpec struct {
	genres      map[string]struct{}
	rating      Range[float64]
	voters      Range[int64]
	duration    Range[int]
	hasDuration bool
	bucket      DurationBucket
}

// NewFilterSpec builds a spec with an explicit duration range.
func NewFilterSpec(genres []string, rating Range[float64], voters Range[int64], duration Range[int]) (FilterSpec, error) {
	spec, err := newSpec(genres, rating, voters)
	if err != nil {
		return FilterSpec{}, err
	}
	if !duration.wellFormed() {
		return FilterSpec{}, fmt.Errorf("%w: duration min %d > max %d", ErrMalformedSpec, duration.Min, duration.Max)
	}
	spec.duration = duration
	spec.hasDuration = true
	return spec, nil
}

// NewBucketFilterSpec builds a spec that constrains duration by a named bucket.
func NewBucketFilterSpec(genres []string, rating Range[float64], voters Range[int64], bucket DurationBucket) (FilterSpec, error) {
	if _, ok := bucketNames[bucket]; !ok {
		return FilterSpec{}, fmt.Errorf("%w: unknown duration bucket %d", ErrMalformedSpec, int(bucket))
	}
	spec, err := newSpec(genres, rating, voters)
	if err != nil {
		return FilterSpec{}, err
	}
	spec.bucket = bucket
	return spec, nil
}

func newSpec(genres []string, rating Range[float64], voters Range[int64]) (FilterSpec, error) {
	if !rating.wellFormed() {
		return FilterSpec{}, fmt.Errorf("%w: rating min %v > max %v", ErrMalformedSpec, rating.Min, rating.Max)
	}
	if !voters.wellFormed() {
		return FilterSpec{}, fmt.Errorf("%w: voters min %d > max %d", ErrMalformedSpec, voters.Min, voters.Max)
	}
	set := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		set[g] = struct{}{}
	}
	return FilterSpec{genres: set, rating: rating, voters: voters}, nil
}

// Genres returns the selected genres, sorted.
func (s FilterSpec) Genres() []string {
	out := make([]string, 0, len(s.genres))
	for g := range s.genres {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Rating returns the rating range.
func (s FilterSpec) Rating() Range[float64] { return s.rating }

// Voters returns the voters range.
func (s FilterSpec) Voters() Range[int64] { return s.voters }

// Duration returns the explicit duration range, if the spec has one.
func (s FilterSpec) Duration() (Range[int], bool) { return s.duration, s.hasDuration }

// Bucket returns the duration bucket. BucketAll when the spec uses a range.
func (s FilterSpec) Bucket() DurationBucket { return s.bucket }

// Match reports whether a movie satisfies every predicate of the spec.
func (s FilterSpec) Match(m domain.Movie) bool {
	if _, ok := s.genres[m.Genre]; !ok {
		return false
	}
	if !s.rating.Contains(m.Rating) || !s.voters.Contains(m.Voters) {
		return false
	}
	if s.hasDuration {
		return s.duration.Contains(m.Duration)
	}
	return s.bucket.Contains(m.Duration)
}
