package retriever

import (
	"github.com/w-h-a/medrag/embedder"
	"github.com/w-h-a/medrag/storer"
)

const DefaultLimit = 10

type Option func(*Options)

type Options struct {
	Embedder   embedder.Embedder
	Storer     storer.Storer
	Collection string
	Limit      int
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = e
	}
}

func WithStorer(s storer.Storer) Option {
	return func(o *Options) {
		o.Storer = s
	}
}

func WithCollection(name string) Option {
	return func(o *Options) {
		o.Collection = name
	}
}

func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type RetrieveOption func(*RetrieveOptions)

type RetrieveOptions struct {
	Limit int
}

func WithRetrieveLimit(limit int) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.Limit = limit
	}
}

func NewRetrieveOptions(opts ...RetrieveOption) RetrieveOptions {
	options := RetrieveOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
