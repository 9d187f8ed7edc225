package client

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client         *http.Client
	rt             http.RoundTripper
	timeout        *time.Duration
	userAgent      string
	accept         string
	maxRedirects   *int
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	registerer     prometheus.Registerer
}

// WithClient replaces the default [http.Client] used by the [Client].
// The given client is copied, never mutated.
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithAccept overrides the vendor Accept header sent with every request.
func WithAccept(mediaType string) Option {
	return func(c *options) error {
		if mediaType == "" {
			return errors.New("accept must not be empty")
		}
		c.accept = mediaType
		return nil
	}
}

// WithMaxRedirects caps the number of redirects followed per request.
// Zero disables redirect following. The default is 5.
func WithMaxRedirects(n int) Option {
	return func(c *options) error {
		if n < 0 {
			return errors.New("max redirects must not be negative")
		}
		c.maxRedirects = &n
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return WithMaxRedirects(0)
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracerProvider sets the provider used to start a client span per
// request. The global provider is used when unset.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *options) error {
		if tp == nil {
			return errors.New("tracer provider must not be nil")
		}
		c.tracerProvider = tp
		return nil
	}
}

// WithMetrics instruments the transport and registers the collectors
// with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *options) error {
		if reg == nil {
			return errors.New("registerer must not be nil")
		}
		c.registerer = reg
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// DoOption is a functional option for [Client.Do].
type DoOption func(options *doOpts) error

type doOpts struct {
	responseBody any
	useJSONNum   bool
	request      []RequestOption
}

// WithDestination decodes the HTTP response body into bodyTemplate.
// bodyTemplate must be a pointer.
func WithDestination[T any](bodyTemplate *T) DoOption {
	return func(opts *doOpts) error {
		if bodyTemplate == nil {
			return errors.New("destination must not be nil")
		}
		opts.responseBody = bodyTemplate

		return nil
	}
}

// WithJSONNumb tells the JSON decoder to use [json.Decoder.UseNumber],
// preserving number precision as [json.Number] instead of float64.
func WithJSONNumb() DoOption {
	return func(opts *doOpts) error {
		opts.useJSONNum = true

		return nil
	}
}

// WithRequest forwards request options from [Client.Do] to [Client.Request].
func WithRequest(reqOpts ...RequestOption) DoOption {
	return func(opts *doOpts) error {
		opts.request = append(opts.request, reqOpts...)

		return nil
	}
}

// RequestOption is a functional option for [Client.Request].
type RequestOption func(options *requestOpts) error

type requestOpts struct {
	body    any
	raw     *string
	headers map[string][]string
}

// WithPayload sets the JSON-encoded request body.
func WithPayload(body any) RequestOption {
	return func(opts *requestOpts) error {
		if opts.raw != nil {
			return errors.New("payload and raw payload are mutually exclusive")
		}
		opts.body = body

		return nil
	}
}

// WithRawPayload sends body verbatim, for already-serialized content.
func WithRawPayload(body string) RequestOption {
	return func(opts *requestOpts) error {
		if opts.body != nil {
			return errors.New("payload and raw payload are mutually exclusive")
		}
		opts.raw = &body

		return nil
	}
}

// WithHeaders adds custom headers to the outgoing request.
// The authentication and content headers cannot be overridden.
func WithHeaders(headers map[string][]string) RequestOption {
	return func(opts *requestOpts) error {
		opts.headers = headers

		return nil
	}
}
