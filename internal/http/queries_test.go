package httpserver

import (
	"errors"
	"net/url"
	"testing"

	"github.com/Clark-Hu/movies-dashboard/internal/engine"
	"github.com/Clark-Hu/movies-dashboard/internal/validation"
)

func TestBuildOverviewQuery(t *testing.T) {
	values, _ := url.ParseQuery("genre=Action&genre=%20Drama%20&rating_min=6.5&votes_max=1000&duration_min=90")

	q, err := buildOverviewQuery(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Genres) != 2 || q.Genres[0] != "Action" || q.Genres[1] != "Drama" {
		t.Fatalf("genres = %v", q.Genres)
	}
	if q.RatingMin == nil || *q.RatingMin != 6.5 {
		t.Fatalf("rating_min parse failed: %v", q.RatingMin)
	}
	if q.RatingMax != nil {
		t.Fatalf("rating_max should default to nil")
	}
	if q.VotesMax == nil || *q.VotesMax != 1000 {
		t.Fatalf("votes_max parse failed")
	}
	if q.DurationMin == nil || *q.DurationMin != 90 {
		t.Fatalf("duration_min parse failed")
	}
}

func TestBuildOverviewQueryGenres(t *testing.T) {
	q, err := buildOverviewQuery(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if q.Genres != nil {
		t.Fatalf("absent genre should mean all genres, got %v", q.Genres)
	}

	values, _ := url.ParseQuery("genre=")
	q, err = buildOverviewQuery(values)
	if err != nil {
		t.Fatal(err)
	}
	if q.Genres == nil || len(q.Genres) != 0 {
		t.Fatalf("empty genre should mean no genres, got %#v", q.Genres)
	}
}

func TestBuildOverviewQueryErrors(t *testing.T) {
	cases := []struct {
		raw        string
		validation bool
	}{
		{"rating_min=abc", false},
		{"rating_min=NaN", false},
		{"rating_max=Inf", false},
		{"votes_min=1.5", false},
		{"duration_max=long", false},
		{"rating_max=11", true},
		{"votes_min=-1", true},
		{"duration_min=-5", true},
	}
	for _, tc := range cases {
		values, _ := url.ParseQuery(tc.raw)
		_, err := buildOverviewQuery(values)
		if err == nil {
			t.Fatalf("%s: expected error", tc.raw)
		}
		var verr *validation.RequestValidationError
		if got := errors.As(err, &verr); got != tc.validation {
			t.Fatalf("%s: validation error = %v, want %v (%v)", tc.raw, got, tc.validation, err)
		}
	}
}

func TestBuildExploreQuery(t *testing.T) {
	values, _ := url.ParseQuery("genre=Drama&min_rating=7.5&min_votes=500&duration=LONG&sort=title")
	q, err := buildExploreQuery(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Genres) != 1 || q.Genres[0] != "Drama" {
		t.Fatalf("genres = %v", q.Genres)
	}
	if q.MinRating != 7.5 || q.MinVotes != 500 {
		t.Fatalf("thresholds = %v/%v", q.MinRating, q.MinVotes)
	}
	if q.Duration != engine.BucketLong || q.Sort != engine.SortTitle {
		t.Fatalf("duration/sort = %v/%v", q.Duration, q.Sort)
	}
}

func TestBuildExploreQueryDefaults(t *testing.T) {
	q, err := buildExploreQuery(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if q.Genres != nil || q.MinRating != 0 || q.MinVotes != 0 {
		t.Fatalf("unexpected defaults %+v", q)
	}
	if q.Duration != engine.BucketAll || q.Sort != engine.SortRating {
		t.Fatalf("duration/sort defaults = %v/%v", q.Duration, q.Sort)
	}
}

func TestBuildExploreQueryErrors(t *testing.T) {
	cases := []struct {
		raw   string
		field string
	}{
		{"min_rating=10.5", "min_rating"},
		{"min_votes=-3", "min_votes"},
		{"duration=epic", "duration"},
		{"sort=popularity", "sort"},
	}
	for _, tc := range cases {
		values, _ := url.ParseQuery(tc.raw)
		_, err := buildExploreQuery(values)
		var verr *validation.RequestValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", tc.raw, err)
		}
		if verr.Fields[0].Field != tc.field {
			t.Fatalf("%s: field = %s", tc.raw, verr.Fields[0].Field)
		}
	}

	values, _ := url.ParseQuery("min_votes=lots")
	if _, err := buildExploreQuery(values); err == nil {
		t.Fatalf("expected parse error")
	}
}

func FuzzBuildOverviewQuery(f *testing.F) {
	seeds := []string{
		"genre=Action&rating_min=6&rating_max=9",
		"rating_min=abc",
		"votes_min=-1&duration_max=300",
		"genre=",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		_, _ = buildOverviewQuery(values)
	})
}

func FuzzBuildExploreQuery(f *testing.F) {
	seeds := []string{
		"genre=Drama&min_rating=8&min_votes=10000&duration=short&sort=votes",
		"duration=epic",
		"min_rating=1e400",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		q, err := buildExploreQuery(values)
		if err != nil {
			return
		}
		if q.MinRating < 0 || q.MinRating > 10 || q.MinVotes < 0 {
			t.Fatalf("accepted out-of-range query %+v", q)
		}
	})
}
