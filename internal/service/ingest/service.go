package ingest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/medrag/chunker"
	"github.com/w-h-a/medrag/embedder"
	"github.com/w-h-a/medrag/fetcher"
	"github.com/w-h-a/medrag/internal/policy"
	"github.com/w-h-a/medrag/storer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("github.com/w-h-a/medrag/internal/service/ingest")

type Service struct {
	fetcher  fetcher.Fetcher
	chunker  chunker.Chunker
	embedder embedder.Embedder
	storer   storer.Storer
	limiter  *rate.Limiter
	options  Options
	seen     map[string]struct{}
	mtx      sync.Mutex
}

// Run ingests every source. Failures are handled per the policy table and
// never abort the run; only ctx cancellation stops it early.
func (s *Service) Run(ctx context.Context, sources []string) Report {
	ctx, span := tracer.Start(ctx, "ingest.Run")
	defer span.End()

	if err := s.storer.CreateCollection(ctx, s.options.Collection, s.options.Dimension, s.options.Metric); err != nil {
		if policy.Apply(ctx, policy.CreateCollection, err, "collection", s.options.Collection) == policy.Fail {
			return Report{}
		}
	}

	s.mtx.Lock()
	s.seen = map[string]struct{}{}
	s.mtx.Unlock()

	report := Report{Sources: make([]SourceReport, len(sources))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Workers)

	for i, source := range sources {
		g.Go(func() error {
			report.Sources[i] = s.ingestSource(gctx, source)
			return nil
		})
	}

	g.Wait()

	slog.InfoContext(ctx, "ingestion completed",
		"collection", s.options.Collection,
		"sources", len(sources),
		"inserted", report.Inserted(),
		"failed", report.Failed(),
		"skipped", len(report.Skipped()),
	)

	return report
}

func (s *Service) ingestSource(ctx context.Context, source string) SourceReport {
	ctx, span := tracer.Start(ctx, "ingest.Source")
	defer span.End()
	span.SetAttributes(attribute.String("source", source))

	rep := SourceReport{Source: source}

	slog.InfoContext(ctx, "processing source", "source", source)

	text, err := s.fetcher.Fetch(ctx, source)
	if err == nil && len(strings.TrimSpace(text)) == 0 {
		err = fetcher.ErrFetch
	}
	if err != nil {
		policy.Apply(ctx, policy.Fetch, err, "source", source)
		rep.FetchError = err
		return rep
	}

	chunks := s.chunker.Split(text)
	rep.Chunks = len(chunks)

	slog.InfoContext(ctx, "created chunks", "source", source, "chunks", len(chunks))

	for _, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) == 0 {
			continue
		}

		key := contentKey(source, chunk)
		if !s.claim(key) {
			rep.Duplicates++
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			// only a cancelled context gets here; the remaining chunks are abandoned
			s.release(key)
			rep.Failed += rep.Chunks - rep.Inserted - rep.Failed - rep.Duplicates
			return rep
		}

		vec, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			s.release(key)
			rep.Failed++
			if policy.Apply(ctx, policy.EmbedChunk, err, "source", source) == policy.Fail {
				return rep
			}
			continue
		}

		id, err := s.storer.Insert(ctx, s.options.Collection, storer.Record{
			Vector:    vec,
			Text:      chunk,
			Source:    source,
			Timestamp: time.Now().UTC(),
			Metadata:  map[string]any{"key": key},
		})
		if err != nil {
			s.release(key)
			rep.Failed++
			if policy.Apply(ctx, policy.Insert, err, "source", source) == policy.Fail {
				return rep
			}
			continue
		}

		slog.DebugContext(ctx, "inserted chunk", "source", source, "id", id)
		rep.Inserted++
	}

	return rep
}

// claim marks key as written in the current run. It reports false if another chunk
// already claimed it.
func (s *Service) claim(key string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

func (s *Service) release(key string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.seen, key)
}

// contentKey is a stable identifier for a chunk of a source.
func contentKey(source string, text string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+"\n"+text)).String()
}

func New(
	fetcher fetcher.Fetcher,
	chunker chunker.Chunker,
	embedder embedder.Embedder,
	storer storer.Storer,
	opts ...Option,
) *Service {
	if fetcher == nil || chunker == nil || embedder == nil || storer == nil {
		panic("fetcher, chunker, embedder and storer are required")
	}

	options := NewOptions(opts...)

	if len(options.Collection) == 0 {
		panic("collection is required")
	}

	if options.Workers <= 0 {
		options.Workers = 1
	}

	limit := rate.Inf
	if options.Delay > 0 {
		limit = rate.Every(options.Delay)
	}

	return &Service{
		fetcher:  fetcher,
		chunker:  chunker,
		embedder: embedder,
		storer:   storer,
		limiter:  rate.NewLimiter(limit, 1),
		options:  options,
		seen:     map[string]struct{}{},
		mtx:      sync.Mutex{},
	}
}
