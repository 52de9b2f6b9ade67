package providers

import "strings"

// Option customises a provider at construction.
type Option func(*options)

type options struct {
	baseURL string
	backoff BackoffConfig
}

func newOptions(defaultBaseURL string, opts []Option) options {
	o := options{
		baseURL: defaultBaseURL,
		backoff: DefaultBackoff(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBaseURL points the provider at another host, e.g. a test server.
// An empty url keeps the default.
func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithBackoff overrides the retry policy.
func WithBackoff(b BackoffConfig) Option {
	return func(o *options) {
		o.backoff = b
	}
}
