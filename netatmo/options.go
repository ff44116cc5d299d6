package netatmo

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout is the HTTP timeout used when no client or timeout is supplied.
const DefaultTimeout = 30 * time.Second

// Option configures a client.
type Option func(*clientOptions)

// clientOptions holds configuration options shared by both client states.
type clientOptions struct {
	httpClient *http.Client
	transport  Transport
	timeout    time.Duration
	userAgent  string
	logger     zerolog.Logger
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTransport replaces the transport entirely. WithHTTPClient, WithTimeout
// and WithUserAgent are ignored when a transport is set.
func WithTransport(transport Transport) Option {
	return func(o *clientOptions) {
		o.transport = transport
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) clientOptions {
	o := clientOptions{
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newTransport resolves the options into the transport a client will own.
func (o clientOptions) newTransport() Transport {
	if o.transport != nil {
		return o.transport
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &httpTransport{client: httpClient, userAgent: o.userAgent}
}
