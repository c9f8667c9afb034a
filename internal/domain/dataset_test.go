package domain

import (
	"errors"
	"testing"
)

func TestNewDatasetGenresAndBounds(t *testing.T) {
	ds, err := NewDataset([]Movie{
		{Title: "A", Genre: "Action", Rating: 7.0, Voters: 100, Duration: 90},
		{Title: "B", Genre: "Drama", Rating: 8.5, Voters: 50, Duration: 130},
		{Title: "C", Genre: "Action", Rating: 6.0, Voters: 200, Duration: 150},
	})
	if err != nil {
		t.Fatalf("NewDataset() unexpected error: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	genres := ds.Genres()
	if len(genres) != 2 || genres[0] != "Action" || genres[1] != "Drama" {
		t.Fatalf("Genres() = %v, want [Action Drama]", genres)
	}
	want := Bounds{RatingMin: 6.0, RatingMax: 8.5, VotersMin: 50, VotersMax: 200, DurationMin: 90, DurationMax: 150}
	if got := ds.Bounds(); got != want {
		t.Fatalf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestNewDatasetCopiesInput(t *testing.T) {
	rows := []Movie{{Title: "A", Genre: "Action", Rating: 7.0, Voters: 100, Duration: 90}}
	ds, err := NewDataset(rows)
	if err != nil {
		t.Fatalf("NewDataset() unexpected error: %v", err)
	}
	rows[0].Title = "mutated"
	if ds.At(0).Title != "A" {
		t.Fatalf("dataset shares caller's slice")
	}
	out := ds.Movies()
	out[0].Title = "mutated"
	if ds.At(0).Title != "A" {
		t.Fatalf("Movies() exposes internal slice")
	}
}

func TestNewDatasetRejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
	}{
		{"missing genre", Movie{Title: "x", Rating: 5, Voters: 1, Duration: 90}},
		{"rating above scale", Movie{Title: "x", Genre: "Drama", Rating: 10.5, Voters: 1, Duration: 90}},
		{"negative rating", Movie{Title: "x", Genre: "Drama", Rating: -1, Voters: 1, Duration: 90}},
		{"negative voters", Movie{Title: "x", Genre: "Drama", Rating: 5, Voters: -1, Duration: 90}},
		{"zero duration", Movie{Title: "x", Genre: "Drama", Rating: 5, Voters: 1, Duration: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDataset([]Movie{tt.movie})
			if !errors.Is(err, ErrInvalidMovie) {
				t.Fatalf("NewDataset() error = %v, want ErrInvalidMovie", err)
			}
		})
	}
}

func TestEmptyDataset(t *testing.T) {
	ds, err := NewDataset(nil)
	if err != nil {
		t.Fatalf("NewDataset(nil) unexpected error: %v", err)
	}
	if ds.Len() != 0 || len(ds.Genres()) != 0 {
		t.Fatalf("empty dataset reports data: len=%d genres=%v", ds.Len(), ds.Genres())
	}
	if ds.Bounds() != (Bounds{}) {
		t.Fatalf("empty dataset bounds = %+v", ds.Bounds())
	}
}
