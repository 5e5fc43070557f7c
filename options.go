package medrag

import (
	"time"

	"github.com/w-h-a/medrag/internal/service/query"
	"github.com/w-h-a/medrag/prompt"
	"github.com/w-h-a/medrag/storer"
)

type Option func(*Options)

type Options struct {
	Collection string
	Dimension  int
	Metric     storer.Metric
	Limit      int
	Workers    int
	Delay      time.Duration
	Observer   func(query.State)
	Prompt     []prompt.Option
}

func WithCollection(name string) Option {
	return func(o *Options) {
		o.Collection = name
	}
}

// WithDimension must match the embedder's output length.
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

// WithLimit sets how many chunks are retrieved per query.
func WithLimit(k int) Option {
	return func(o *Options) {
		o.Limit = k
	}
}

func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithDelay sets the minimum spacing between embedding calls during ingestion.
func WithDelay(d time.Duration) Option {
	return func(o *Options) {
		o.Delay = d
	}
}

func WithObserver(fn func(query.State)) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

func WithPrompt(opts ...prompt.Option) Option {
	return func(o *Options) {
		o.Prompt = append(o.Prompt, opts...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Collection: "medical",
		Dimension:  768,
		Metric:     storer.Cosine,
		Limit:      10,
		Workers:    1,
		Delay:      100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
