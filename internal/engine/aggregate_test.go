package engine

import (
	"reflect"
	"testing"

	"github.com/Clark-Hu/movies-dashboard/internal/domain"
)

func genresOf(rows []GenreValue) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Genre
	}
	return out
}

func TestGroupMean(t *testing.T) {
	view := All(sampleDataset(t))

	asc := GroupMean(view, FieldDuration, Ascending)
	want := []GenreValue{
		{Genre: "Action", Value: 120, Count: 2},
		{Genre: "Drama", Value: 130, Count: 1},
	}
	if !reflect.DeepEqual(asc, want) {
		t.Fatalf("ascending duration means = %+v", asc)
	}

	desc := GroupMean(view, FieldVoters, Descending)
	if got := genresOf(desc); !reflect.DeepEqual(got, []string{"Action", "Drama"}) {
		t.Fatalf("descending voters order = %v", got)
	}
	if desc[0].Value != 150 || desc[1].Value != 50 {
		t.Fatalf("voters means = %+v", desc)
	}

	if got := GroupMean(View{}, FieldRating, Ascending); len(got) != 0 {
		t.Fatalf("empty view grouped into %+v", got)
	}
}

func TestGroupMeanTiesAlphabetical(t *testing.T) {
	ds, err := domain.NewDataset([]domain.Movie{
		{Title: "z", Genre: "Western", Rating: 5, Voters: 1, Duration: 100},
		{Title: "y", Genre: "Comedy", Rating: 5, Voters: 1, Duration: 100},
		{Title: "x", Genre: "Action", Rating: 5, Voters: 1, Duration: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, o := range []Order{Ascending, Descending} {
		if got := genresOf(GroupMean(All(ds), FieldRating, o)); !reflect.DeepEqual(got, []string{"Action", "Comedy", "Western"}) {
			t.Fatalf("order %v: %v", o, got)
		}
	}
}

func TestGroupSumAndCounts(t *testing.T) {
	view := All(sampleDataset(t))

	sums := GroupSum(view, FieldVoters, Descending)
	if !reflect.DeepEqual(sums, []GenreValue{{"Action", 300, 2}, {"Drama", 50, 1}}) {
		t.Fatalf("voter sums = %+v", sums)
	}
	counts := GenreCounts(view)
	if !reflect.DeepEqual(counts, []GenreValue{{"Action", 2, 2}, {"Drama", 1, 1}}) {
		t.Fatalf("genre counts = %+v", counts)
	}
}

func TestGenreLeaders(t *testing.T) {
	ds, err := domain.NewDataset([]domain.Movie{
		{Title: "A", Genre: "Action", Rating: 7.0, Voters: 100, Duration: 90},
		{Title: "B", Genre: "Drama", Rating: 8.5, Voters: 50, Duration: 130},
		{Title: "C", Genre: "Action", Rating: 6.0, Voters: 200, Duration: 150},
		{Title: "D", Genre: "Drama", Rating: 8.5, Voters: 75, Duration: 100},
		{Title: "E", Genre: "Comedy", Rating: 7.0, Voters: 10, Duration: 95},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := titles(GenreLeaders(All(ds)))
	// Drama tie goes to B (first seen); Action and Comedy tie on 7.0 and keep genre order
	if want := []string{"B", "A", "E"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("leaders = %v, want %v", got, want)
	}
	if got := GenreLeaders(View{}); len(got) != 0 {
		t.Fatalf("leaders of empty view = %v", got)
	}
}

func TestExtremes(t *testing.T) {
	ds, err := domain.NewDataset([]domain.Movie{
		{Title: "A", Genre: "Action", Rating: 7, Voters: 1, Duration: 90},
		{Title: "B", Genre: "Drama", Rating: 7, Voters: 1, Duration: 200},
		{Title: "C", Genre: "Action", Rating: 7, Voters: 1, Duration: 90},
		{Title: "D", Genre: "Drama", Rating: 7, Voters: 1, Duration: 200},
		{Title: "E", Genre: "Drama", Rating: 7, Voters: 1, Duration: 120},
	})
	if err != nil {
		t.Fatal(err)
	}
	view := All(ds)
	if got := titles(Shortest(view, 3)); !reflect.DeepEqual(got, []string{"A", "C", "E"}) {
		t.Fatalf("shortest = %v", got)
	}
	if got := titles(Longest(view, 3)); !reflect.DeepEqual(got, []string{"B", "D", "E"}) {
		t.Fatalf("longest = %v", got)
	}
	if got := Shortest(view, -1); len(got) != 0 {
		t.Fatalf("negative k returned %v", got)
	}
}

func TestRatingHeatmap(t *testing.T) {
	got := RatingHeatmap(All(sampleDataset(t)))
	want := []GenreValue{{"Action", 6.5, 2}, {"Drama", 8.5, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("heatmap = %+v", got)
	}
}

func TestRatingHistogram(t *testing.T) {
	view := All(sampleDataset(t))

	bins := RatingHistogram(view, 5)
	if len(bins) != 5 {
		t.Fatalf("got %d bins", len(bins))
	}
	if bins[0].Lower != 6.0 || bins[4].Upper != 8.5 {
		t.Fatalf("span = [%v,%v]", bins[0].Lower, bins[4].Upper)
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 3 {
		t.Fatalf("histogram holds %d rows", total)
	}
	if bins[0].Count != 1 || bins[4].Count != 1 {
		t.Fatalf("edge bins = %+v", bins)
	}

	ds, err := domain.NewDataset([]domain.Movie{
		{Title: "x", Genre: "G", Rating: 6, Voters: 1, Duration: 90},
		{Title: "y", Genre: "G", Rating: 6, Voters: 2, Duration: 90},
	})
	if err != nil {
		t.Fatal(err)
	}
	flat := RatingHistogram(All(ds), DefaultHistogramBins)
	if len(flat) != 1 || flat[0].Count != 2 {
		t.Fatalf("flat histogram = %+v", flat)
	}
	if RatingHistogram(View{}, DefaultHistogramBins) != nil {
		t.Fatalf("empty view should have no bins")
	}
}

func TestSort(t *testing.T) {
	view := All(sampleDataset(t))
	cases := []struct {
		opt  SortOption
		want []string
	}{
		{SortRating, []string{"B", "A", "C"}},
		{SortVotes, []string{"C", "A", "B"}},
		{SortDuration, []string{"C", "B", "A"}},
		{SortTitle, []string{"A", "B", "C"}},
	}
	for _, tc := range cases {
		if got := titles(Sort(view, tc.opt)); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Sort(%s) = %v, want %v", tc.opt, got, tc.want)
		}
	}
}

func TestParseSortOption(t *testing.T) {
	if got, err := ParseSortOption(" Votes "); err != nil || got != SortVotes {
		t.Fatalf("ParseSortOption = %v, %v", got, err)
	}
	if _, err := ParseSortOption("popularity"); err == nil {
		t.Fatalf("expected error for unknown option")
	}
}

func BenchmarkFilter(b *testing.B) {
	ds := syntheticDataset(b, 10000)
	spec := mustSpec(b, []string{"Drama", "Action"}, Between(5.0, 9.0), Between[int64](500, 90000), Between(90, 180))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Filter(ds, spec)
	}
}

func BenchmarkOverviewAggregates(b *testing.B) {
	view := All(syntheticDataset(b, 10000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(view)
		_ = GroupMean(view, FieldDuration, Ascending)
		_ = GenreLeaders(view)
		_ = TopK(view, 10)
		_ = Correlation(view)
	}
}
