package generator

import (
	"context"
	"time"
)

// Config is applied unchanged to every generation call.
type Config struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

var DefaultConfig = Config{
	Temperature:     0.7,
	TopP:            0.8,
	TopK:            40,
	MaxOutputTokens: 2048,
}

type Option func(*Options)

type Options struct {
	ApiKey  string
	Model   string
	BaseURL string
	Config  Config
	Timeout time.Duration
	Context context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

func WithConfig(cfg Config) Option {
	return func(o *Options) {
		o.Config = cfg
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithContext is the base context for work done while constructing the client.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Config:  DefaultConfig,
		Timeout: 60 * time.Second,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
