package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/w-h-a/medrag/chunker"
	"github.com/w-h-a/medrag/chunker/boundary"
	"github.com/w-h-a/medrag/fetcher"
	httpfetcher "github.com/w-h-a/medrag/fetcher/http"
	"github.com/w-h-a/medrag/internal/config"
	"github.com/w-h-a/medrag/internal/service/ingest"
)

var (
	cfg struct {
		config.Providers `embed:""`

		// Source config
		Sources      string        `help:"YAML file listing source urls (built-in list when missing)" default:"sources.yaml" env:"SOURCES_FILE"`
		UserAgent    string        `help:"User-Agent sent when fetching sources" default:"medrag-ingest/1.0" env:"USER_AGENT"`
		FetchTimeout time.Duration `help:"Timeout for fetching one source" default:"30s" env:"FETCH_TIMEOUT"`

		// Chunker config
		ChunkSize    int `help:"Maximum characters per chunk" default:"512" env:"CHUNK_SIZE"`
		ChunkOverlap int `help:"Characters shared by consecutive chunks" default:"100" env:"CHUNK_OVERLAP"`

		// Pipeline config
		Workers int           `help:"Sources processed at once" default:"1" env:"WORKERS"`
		Delay   time.Duration `help:"Minimum spacing between embedding calls" default:"100ms" env:"DELAY"`
	}
)

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg, kong.Description("Fetch, chunk, embed and store the medical knowledge base."))

	logger, err := config.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, err := config.LoadSources(cfg.Sources)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load sources", "error", err)
		os.Exit(1)
	}

	metric, err := cfg.ParseMetric()
	if err != nil {
		slog.ErrorContext(ctx, "invalid metric", "error", err)
		os.Exit(1)
	}

	c, err := boundary.NewChunker(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithChunkOverlap(cfg.ChunkOverlap),
	)
	if err != nil {
		slog.ErrorContext(ctx, "invalid chunker config", "error", err)
		os.Exit(1)
	}

	em, err := cfg.NewEmbedder(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create embedder", "error", err)
		os.Exit(1)
	}

	st, err := cfg.NewStorer(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create storer", "error", err)
		os.Exit(1)
	}
	defer config.Close(em, st)

	f := httpfetcher.NewFetcher(
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithTimeout(cfg.FetchTimeout),
	)

	svc := ingest.New(
		f,
		c,
		em,
		st,
		ingest.WithCollection(cfg.Collection),
		ingest.WithDimension(cfg.Dimension),
		ingest.WithMetric(metric),
		ingest.WithWorkers(cfg.Workers),
		ingest.WithDelay(cfg.Delay),
	)

	report := svc.Run(ctx, sources)

	for _, s := range report.Sources {
		if s.FetchError != nil {
			slog.WarnContext(ctx, "source skipped", "source", s.Source, "error", s.FetchError)
			continue
		}
		slog.InfoContext(ctx, "source ingested",
			"source", s.Source,
			"chunks", s.Chunks,
			"inserted", s.Inserted,
			"failed", s.Failed,
			"duplicates", s.Duplicates,
		)
	}

	if report.Inserted() == 0 && len(sources) > 0 {
		os.Exit(1)
	}
}
