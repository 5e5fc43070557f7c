package fetcher

import (
	"time"
)

type Option func(*Options)

type Options struct {
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64
}

func WithUserAgent(ua string) Option {
	return func(o *Options) {
		o.UserAgent = ua
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithMaxBytes(n int64) Option {
	return func(o *Options) {
		o.MaxBytes = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		UserAgent: "medrag-ingest/1.0",
		Timeout:   30 * time.Second,
		MaxBytes:  8 << 20,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
