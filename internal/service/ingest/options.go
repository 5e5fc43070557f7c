package ingest

import (
	"time"

	"github.com/w-h-a/medrag/storer"
)

type Option func(*Options)

type Options struct {
	Collection string
	Dimension  int
	Metric     storer.Metric
	Workers    int
	Delay      time.Duration
}

func WithCollection(name string) Option {
	return func(o *Options) {
		o.Collection = name
	}
}

func WithDimension(dimension int) Option {
	return func(o *Options) {
		o.Dimension = dimension
	}
}

func WithMetric(metric storer.Metric) Option {
	return func(o *Options) {
		o.Metric = metric
	}
}

// WithWorkers sets how many sources are processed at once.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithDelay sets the minimum spacing between embedding calls across all workers.
func WithDelay(d time.Duration) Option {
	return func(o *Options) {
		o.Delay = d
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Dimension: 768,
		Metric:    storer.Cosine,
		Workers:   1,
		Delay:     100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
