package query

type Option func(*Options)

type Options struct {
	Limit    int
	Observer func(State)
}

// WithLimit sets how many chunks are retrieved per request.
func WithLimit(k int) Option {
	return func(o *Options) {
		o.Limit = k
	}
}

// WithObserver is called on every state transition of every request.
func WithObserver(fn func(State)) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Limit: 10,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
