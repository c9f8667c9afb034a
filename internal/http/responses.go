package httpserver

import (
	"github.com/Clark-Hu/movies-dashboard/internal/dashboard"
	"github.com/Clark-Hu/movies-dashboard/internal/domain"
	"github.com/Clark-Hu/movies-dashboard/internal/engine"
)

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type movieResponse struct {
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Rating   float64 `json:"rating"`
	Voters   int64   `json:"voters"`
	Duration int     `json:"duration"`
}

// Undefined statistics are encoded as null.
type summaryResponse struct {
	Count        int      `json:"count"`
	MeanRating   *float64 `json:"meanRating"`
	TotalVoters  int64    `json:"totalVoters"`
	MeanDuration *float64 `json:"meanDuration"`
	Genres       int      `json:"genres"`
}

type genreValueResponse struct {
	Genre string  `json:"genre"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

type binResponse struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type overviewResponse struct {
	Summary           summaryResponse      `json:"summary"`
	GenreDistribution []genreValueResponse `json:"genreDistribution"`
	RatingHistogram   []binResponse        `json:"ratingHistogram"`
	DurationByGenre   []genreValueResponse `json:"durationByGenre"`
	VotesByGenreMean  []genreValueResponse `json:"votesByGenreMean"`
	TopMovies         []movieResponse      `json:"topMovies"`
	GenreLeaders      []movieResponse      `json:"genreLeaders"`
	RatingHeatmap     []genreValueResponse `json:"ratingHeatmap"`
	Correlation       *float64             `json:"correlation"`
	Shortest          []movieResponse      `json:"shortest"`
	Longest           []movieResponse      `json:"longest"`
	VotesByGenre      []genreValueResponse `json:"votesByGenre"`
}

type exploreResponse struct {
	Summary           summaryResponse      `json:"summary"`
	Movies            []movieResponse      `json:"movies"`
	GenreDistribution []genreValueResponse `json:"genreDistribution"`
	RatingHistogram   []binResponse        `json:"ratingHistogram"`
	Warning           string               `json:"warning,omitempty"`
}

type boundsResponse struct {
	RatingMin   float64 `json:"ratingMin"`
	RatingMax   float64 `json:"ratingMax"`
	VotesMin    int64   `json:"votesMin"`
	VotesMax    int64   `json:"votesMax"`
	DurationMin int     `json:"durationMin"`
	DurationMax int     `json:"durationMax"`
}

type presetResponse struct {
	Name      string   `json:"name"`
	Genres    []string `json:"genres"`
	MinRating float64  `json:"minRating"`
	MinVotes  int64    `json:"minVotes"`
	Duration  string   `json:"duration"`
}

type optionsResponse struct {
	Genres          []string         `json:"genres"`
	Bounds          boundsResponse   `json:"bounds"`
	DurationBuckets []string         `json:"durationBuckets"`
	SortOptions     []string         `json:"sortOptions"`
	Presets         []presetResponse `json:"presets"`
	Movies          int              `json:"movies"`
}

type sessionResponse struct {
	Page   string `json:"page"`
	Effect string `json:"effect,omitempty"`
}

type sessionPageRequest struct {
	Page string `json:"page" validate:"required,oneof=overview advanced"`
}

func nullable(x float64) *float64 {
	if engine.IsUndefined(x) {
		return nil
	}
	return &x
}

func toSummaryResponse(s engine.Summary) summaryResponse {
	return summaryResponse{
		Count:        s.Count,
		MeanRating:   nullable(s.MeanRating),
		TotalVoters:  s.TotalVoters,
		MeanDuration: nullable(s.MeanDuration),
		Genres:       s.Genres,
	}
}

func toMovieResponses(movies []domain.Movie) []movieResponse {
	out := make([]movieResponse, len(movies))
	for i, m := range movies {
		out[i] = movieResponse{Title: m.Title, Genre: m.Genre, Rating: m.Rating, Voters: m.Voters, Duration: m.Duration}
	}
	return out
}

func toGenreValueResponses(rows []engine.GenreValue) []genreValueResponse {
	out := make([]genreValueResponse, len(rows))
	for i, r := range rows {
		out[i] = genreValueResponse{Genre: r.Genre, Value: r.Value, Count: r.Count}
	}
	return out
}

func toBinResponses(bins []engine.Bin) []binResponse {
	out := make([]binResponse, len(bins))
	for i, b := range bins {
		out[i] = binResponse{Lower: b.Lower, Upper: b.Upper, Count: b.Count}
	}
	return out
}

func toOverviewResponse(o dashboard.Overview) overviewResponse {
	return overviewResponse{
		Summary:           toSummaryResponse(o.Summary),
		GenreDistribution: toGenreValueResponses(o.GenreDistribution),
		RatingHistogram:   toBinResponses(o.RatingHistogram),
		DurationByGenre:   toGenreValueResponses(o.DurationByGenre),
		VotesByGenreMean:  toGenreValueResponses(o.VotesByGenreMean),
		TopMovies:         toMovieResponses(o.TopMovies),
		GenreLeaders:      toMovieResponses(o.GenreLeaders),
		RatingHeatmap:     toGenreValueResponses(o.RatingHeatmap),
		Correlation:       nullable(o.Correlation),
		Shortest:          toMovieResponses(o.Shortest),
		Longest:           toMovieResponses(o.Longest),
		VotesByGenre:      toGenreValueResponses(o.VotesByGenre),
	}
}

func toExploreResponse(e dashboard.Explore) exploreResponse {
	return exploreResponse{
		Summary:           toSummaryResponse(e.Summary),
		Movies:            toMovieResponses(e.Movies),
		GenreDistribution: toGenreValueResponses(e.GenreDistribution),
		RatingHistogram:   toBinResponses(e.RatingHistogram),
		Warning:           e.Warning,
	}
}

func toOptionsResponse(o dashboard.Options) optionsResponse {
	resp := optionsResponse{
		Genres: o.Genres,
		Bounds: boundsResponse{
			RatingMin:   o.Bounds.RatingMin,
			RatingMax:   o.Bounds.RatingMax,
			VotesMin:    o.Bounds.VotersMin,
			VotesMax:    o.Bounds.VotersMax,
			DurationMin: o.Bounds.DurationMin,
			DurationMax: o.Bounds.DurationMax,
		},
		DurationBuckets: make([]string, len(o.Buckets)),
		SortOptions:     make([]string, len(o.SortOptions)),
		Presets:         make([]presetResponse, len(o.Presets)),
		Movies:          o.Movies,
	}
	if resp.Genres == nil {
		resp.Genres = []string{}
	}
	for i, b := range o.Buckets {
		resp.DurationBuckets[i] = b.String()
	}
	for i, opt := range o.SortOptions {
		resp.SortOptions[i] = string(opt)
	}
	for i, p := range o.Presets {
		genres := p.Genres
		if genres == nil {
			genres = o.Genres
		}
		if genres == nil {
			genres = []string{}
		}
		resp.Presets[i] = presetResponse{
			Name:      p.Name,
			Genres:    genres,
			MinRating: p.MinRating,
			MinVotes:  p.MinVotes,
			Duration:  p.Duration.String(),
		}
	}
	return resp
}

func toSessionResponse(v dashboard.Visit) sessionResponse {
	return sessionResponse{Page: v.Page.String(), Effect: string(v.Effect)}
}
