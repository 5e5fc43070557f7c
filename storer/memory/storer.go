package memory

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/medrag/storer"
)

type collection struct {
	dimension int
	metric    storer.Metric
	records   []storer.Record
}

type memoryStorer struct {
	options     storer.Options
	collections map[string]*collection
	mtx         sync.RWMutex
}

func (s *memoryStorer) CreateCollection(ctx context.Context, name string, dimension int, metric storer.Metric) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if existing, ok := s.collections[name]; ok {
		slog.InfoContext(ctx, "collection already exists", "collection", name, "dimension", existing.dimension, "metric", existing.metric)
		return nil
	}

	s.collections[name] = &collection{
		dimension: dimension,
		metric:    metric,
	}

	return nil
}

func (s *memoryStorer) Insert(ctx context.Context, name string, rec storer.Record) (string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return "", storer.CollectionNotFound(name)
	}

	if len(rec.Vector) != c.dimension {
		return "", storer.DimensionMismatch(name, c.dimension, len(rec.Vector))
	}

	rec.Id = uuid.New().String()
	rec.Vector = slices.Clone(rec.Vector)
	rec.Metadata = maps.Clone(rec.Metadata)
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	c.records = append(c.records, rec)

	return rec.Id, nil
}

func (s *memoryStorer) Search(ctx context.Context, name string, vector []float32, limit int) ([]storer.Record, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, storer.CollectionNotFound(name)
	}

	if len(vector) != c.dimension {
		return nil, storer.DimensionMismatch(name, c.dimension, len(vector))
	}

	if limit < 1 {
		return []storer.Record{}, nil
	}

	candidates := make([]storer.Record, 0, len(c.records))

	for _, rec := range c.records {
		rec.Distance = c.metric.Distance(vector, rec.Vector)
		candidates = append(candidates, rec)
	}

	// records are kept in insertion order, so a stable sort breaks ties by it
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	// callers own what they get back; stored records are never handed out
	for i := range candidates {
		candidates[i].Vector = slices.Clone(candidates[i].Vector)
		candidates[i].Metadata = maps.Clone(candidates[i].Metadata)
	}

	return candidates, nil
}

func NewStorer(opts ...storer.Option) storer.Storer {
	options := storer.NewOptions(opts...)

	s := &memoryStorer{
		options:     options,
		collections: map[string]*collection{},
		mtx:         sync.RWMutex{},
	}

	return s
}
