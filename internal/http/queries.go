package httpserver

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Clark-Hu/movies-dashboard/internal/dashboard"
	"github.com/Clark-Hu/movies-dashboard/internal/engine"
	"github.com/Clark-Hu/movies-dashboard/internal/validation"
)

type overviewParams struct {
	RatingMin   *float64 `query:"rating_min" validate:"omitempty,gte=0,lte=10"`
	RatingMax   *float64 `query:"rating_max" validate:"omitempty,gte=0,lte=10"`
	VotesMin    *int64   `query:"votes_min" validate:"omitempty,gte=0"`
	VotesMax    *int64   `query:"votes_max" validate:"omitempty,gte=0"`
	DurationMin *int     `query:"duration_min" validate:"omitempty,gte=0"`
	DurationMax *int     `query:"duration_max" validate:"omitempty,gte=0"`
}

type exploreParams struct {
	MinRating float64 `query:"min_rating" validate:"gte=0,lte=10"`
	MinVotes  int64   `query:"min_votes" validate:"gte=0"`
	Duration  string  `query:"duration" validate:"oneof=all short medium long"`
	Sort      string  `query:"sort" validate:"oneof=rating votes duration title"`
}

// buildOverviewQuery parses overview filters. Unparseable values return a plain
// error; out-of-range values return *validation.RequestValidationError.
func buildOverviewQuery(query url.Values) (dashboard.OverviewQuery, error) {
	var (
		p   overviewParams
		err error
	)
	if p.RatingMin, err = optionalFloat(query, "rating_min"); err != nil {
		return dashboard.OverviewQuery{}, err
	}
	if p.RatingMax, err = optionalFloat(query, "rating_max"); err != nil {
		return dashboard.OverviewQuery{}, err
	}
	if p.VotesMin, err = optionalInt64(query, "votes_min"); err != nil {
		return dashboard.OverviewQuery{}, err
	}
	if p.VotesMax, err = optionalInt64(query, "votes_max"); err != nil {
		return dashboard.OverviewQuery{}, err
	}
	if p.DurationMin, err = optionalInt(query, "duration_min"); err != nil {
		return dashboard.OverviewQuery{}, err
	}
	if p.DurationMax, err = optionalInt(query, "duration_max"); err != nil {
		return dashboard.OverviewQuery{}, err
	}
	if verr := validation.ValidateStruct(p); verr != nil {
		return dashboard.OverviewQuery{}, verr
	}
	return dashboard.OverviewQuery{
		Genres:      genresParam(query),
		RatingMin:   p.RatingMin,
		RatingMax:   p.RatingMax,
		VotesMin:    p.VotesMin,
		VotesMax:    p.VotesMax,
		DurationMin: p.DurationMin,
		DurationMax: p.DurationMax,
	}, nil
}

// buildExploreQuery parses advanced-page controls, with the same error split as
// buildOverviewQuery.
func buildExploreQuery(query url.Values) (dashboard.ExploreQuery, error) {
	p := exploreParams{
		Duration: engine.BucketAll.String(),
		Sort:     string(engine.SortRating),
	}
	if v, err := optionalFloat(query, "min_rating"); err != nil {
		return dashboard.ExploreQuery{}, err
	} else if v != nil {
		p.MinRating = *v
	}
	if v, err := optionalInt64(query, "min_votes"); err != nil {
		return dashboard.ExploreQuery{}, err
	} else if v != nil {
		p.MinVotes = *v
	}
	if val := strings.TrimSpace(query.Get("duration")); val != "" {
		p.Duration = strings.ToLower(val)
	}
	if val := strings.TrimSpace(query.Get("sort")); val != "" {
		p.Sort = strings.ToLower(val)
	}
	if verr := validation.ValidateStruct(p); verr != nil {
		return dashboard.ExploreQuery{}, verr
	}

	bucket, err := engine.ParseDurationBucket(p.Duration)
	if err != nil {
		return dashboard.ExploreQuery{}, err
	}
	sortOpt, err := engine.ParseSortOption(p.Sort)
	if err != nil {
		return dashboard.ExploreQuery{}, err
	}
	return dashboard.ExploreQuery{
		Genres:    genresParam(query),
		MinRating: p.MinRating,
		MinVotes:  p.MinVotes,
		Duration:  bucket,
		Sort:      sortOpt,
	}, nil
}

// genresParam returns nil when no genre parameter was sent and a non-nil,
// possibly empty, set otherwise.
func genresParam(query url.Values) []string {
	raw, ok := query["genre"]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, g := range raw {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func optionalFloat(query url.Values, key string) (*float64, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid %s value", key)
	}
	return &f, nil
}

func optionalInt64(query url.Values, key string) (*int64, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value", key)
	}
	return &n, nil
}

func optionalInt(query url.Values, key string) (*int, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value", key)
	}
	return &n, nil
}
