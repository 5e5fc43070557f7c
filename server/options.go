package server

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	Name            string
	Address         string
	ShutdownTimeout time.Duration
	Context         context.Context
}

func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

// WithShutdownTimeout bounds how long in-flight requests may run after Run's
// context is cancelled.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ShutdownTimeout = d
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Name:            "medrag",
		Address:         ":3000",
		ShutdownTimeout: 10 * time.Second,
		Context:         context.Background(),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
