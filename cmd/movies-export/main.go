// Command movies-export writes the advanced-page selection as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movies-dashboard/internal/config"
	"github.com/Clark-Hu/movies-dashboard/internal/dashboard"
	"github.com/Clark-Hu/movies-dashboard/internal/engine"
	"github.com/Clark-Hu/movies-dashboard/internal/export"
	"github.com/Clark-Hu/movies-dashboard/internal/logging"
	"github.com/Clark-Hu/movies-dashboard/internal/source"
)

type genreList []string

func (g *genreList) String() string { return strings.Join(*g, ",") }

func (g *genreList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*g = append(*g, part)
		}
	}
	return nil
}

type options struct {
	genres    genreList
	minRating float64
	minVotes  int64
	duration  string
	sort      string
	out       string
	dbURL     string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("movies-export", flag.ContinueOnError)
	fs.Var(&o.genres, "genre", "genre to include; repeat or comma-separate (default all)")
	fs.Float64Var(&o.minRating, "min-rating", 0, "minimum rating, 0-10")
	fs.Int64Var(&o.minVotes, "min-votes", 0, "minimum number of voters")
	fs.StringVar(&o.duration, "duration", engine.BucketAll.String(), "duration bucket: all, short, medium or long")
	fs.StringVar(&o.sort, "sort", string(engine.SortRating), "sort order for the summary: rating, votes, duration or title")
	fs.StringVar(&o.out, "out", export.Filename, `output file, "-" for stdout`)
	fs.StringVar(&o.dbURL, "db", "", "database URL, overrides DB_URL")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.minRating < 0 || o.minRating > 10 {
		return o, fmt.Errorf("-min-rating must be between 0 and 10")
	}
	if o.minVotes < 0 {
		return o, fmt.Errorf("-min-votes must be non-negative")
	}
	return o, nil
}

func (o options) query() (dashboard.ExploreQuery, error) {
	bucket, err := engine.ParseDurationBucket(o.duration)
	if err != nil {
		return dashboard.ExploreQuery{}, err
	}
	sortOpt, err := engine.ParseSortOption(o.sort)
	if err != nil {
		return dashboard.ExploreQuery{}, err
	}
	q := dashboard.ExploreQuery{MinRating: o.minRating, MinVotes: o.minVotes, Duration: bucket, Sort: sortOpt}
	if len(o.genres) > 0 {
		q.Genres = o.genres
	}
	return q, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "movies-export: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	q, err := opts.query()
	if err != nil {
		return err
	}
	if opts.dbURL != "" {
		if err := os.Setenv("DB_URL", opts.dbURL); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: "console", Output: stderr}).
		Level(zerolog.WarnLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DatasetLoadTimeoutSecs)*time.Second)
	defer cancel()

	handle, err := source.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer handle.Close()
	ds, err := source.LoadDataset(ctx, handle.Source, handle.Name, logger)
	if err != nil {
		return err
	}

	return exportView(dashboard.NewService(ds, logger), q, opts.out, stdout, stderr)
}

func exportView(svc *dashboard.Service, q dashboard.ExploreQuery, out string, stdout, stderr io.Writer) error {
	view, err := svc.ExploreView(q)
	if err != nil {
		return err
	}
	if view.Len() == 0 {
		fmt.Fprintln(stderr, dashboard.EmptyWarning)
		return nil
	}

	if out == "-" {
		return export.WriteCSV(stdout, view)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := export.WriteCSV(f, view); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %d movies to %s\n", view.Len(), out)
	return nil
}
