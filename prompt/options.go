package prompt

type Option func(*Options)

type Options struct {
	SystemPolicy   string
	Acknowledgment string
}

// WithSystemPolicy replaces the policy text. It must contain ContextPlaceholder.
func WithSystemPolicy(policy string) Option {
	return func(o *Options) {
		o.SystemPolicy = policy
	}
}

func WithAcknowledgment(ack string) Option {
	return func(o *Options) {
		o.Acknowledgment = ack
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		SystemPolicy:   DefaultSystemPolicy,
		Acknowledgment: DefaultAcknowledgment,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
