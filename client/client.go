package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps the std-lib *http.Client with the panel host and token.
// It is safe for concurrent use; nothing on it changes after [Build].
type Client struct {
	c      *http.Client
	host   string
	token  string
	accept string
	logger *slog.Logger
	tracer trace.Tracer
}

// Build instantiates a [Client] for host, authenticating with token.
// The host is normalised to end in exactly one "/".
func Build(host, token string, optFns ...Option) (*Client, error) {
	if err := checkHost(host); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.New("token must not be empty")
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		c:      &http.Client{},
		host:   NormalizeHost(host),
		token:  token,
		accept: DefaultAccept,
		logger: slog.Default(),
	}

	if opts.client != nil {
		cpy := *opts.client
		client.c = &cpy
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.accept != "" {
		client.accept = opts.accept
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	maxRedirects := defaultMaxRedirects
	if opts.maxRedirects != nil {
		maxRedirects = *opts.maxRedirects
	}
	client.c.CheckRedirect = checkRedirect(maxRedirects)

	tp := opts.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	client.tracer = tp.Tracer(tracerName)

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.registerer != nil {
		rt, err := instrument(opts.registerer, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring metrics: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Host returns the normalised host, always ending in "/".
func (c *Client) Host() string {
	return c.host
}

// URL joins route onto the normalised host.
func (c *Client) URL(route string) string {
	return Join(c.host, route)
}

// Do dispatches one request to route and returns the response on any 2xx
// status. A non-2xx status yields an [*UnexpectedStatusError]; a failure
// to get any response yields the transport's error. Do never classifies.
func (c *Client) Do(ctx context.Context, method, route string, opts ...DoOption) (*Response, error) {
	var settings doOpts
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}

	req, err := c.Request(ctx, method, route, settings.request...)
	if err != nil {
		return nil, err
	}

	var out *Response
	doFunc := func(resp *http.Response) error {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}

		out = &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       b,
		}

		if settings.responseBody != nil && len(b) > 0 {
			d := json.NewDecoder(bytes.NewReader(b))

			if settings.useJSONNum {
				d.UseNumber()
			}

			if err := d.Decode(settings.responseBody); err != nil {
				return fmt.Errorf("decoding body: %w", err)
			}
		}

		return nil
	}

	if err := c.exec(req, route, doFunc); err != nil {
		return nil, err
	}

	return out, nil
}

// Request instantiates an *http.Request for route with the standard
// panel headers attached.
func (c *Client) Request(ctx context.Context, method, route string, opts ...RequestOption) (*http.Request, error) {
	if !validMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	var settings requestOpts
	for _, opt := range opts {
		if err := opt(&settings); err != nil {
			return nil, err
		}
	}

	var body io.Reader
	switch {
	case settings.raw != nil:
		body = strings.NewReader(*settings.raw)
	case settings.body != nil:
		var payload bytes.Buffer
		if err := json.NewEncoder(&payload).Encode(settings.body); err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		body = &payload
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(route), body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	for k, v := range settings.headers {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", c.accept)
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

// exec runs the request and the injected function on any 2xx status.
func (c *Client) exec(req *http.Request, route string, fn execFn) error {
	ctx, span := c.startSpan(req, route)
	defer span.End()

	req = req.WithContext(ctx)
	start := time.Now()

	resp, err := c.c.Do(req)
	if err != nil {
		endSpan(span, 0, err)
		return fmt.Errorf("exec http do: %w", &roundTripError{err: err})
	}

	c.logger.Debug("panel request",
		"method", req.Method,
		"route", route,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-Id"),
		"took", time.Since(start).String(),
	)

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := statusError(resp.StatusCode, b)
		endSpan(span, resp.StatusCode, statusErr)

		return statusErr
	}

	if err := fn(resp); err != nil {
		discardBody = false
		endSpan(span, resp.StatusCode, err)
		return fmt.Errorf("exec fn: %w", err)
	}

	endSpan(span, resp.StatusCode, nil)

	return nil
}

func checkHost(host string) error {
	if host == "" {
		return errors.New("host must not be empty")
	}

	u, err := url.Parse(host)
	if err != nil {
		return fmt.Errorf("parsing host: %w", err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("host %q must be an absolute http(s) url", host)
	}

	return nil
}

func checkRedirect(limit int) func(*http.Request, []*http.Request) error {
	if limit == 0 {
		return func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return func(req *http.Request, via []*http.Request) error {
		if len(via) > limit {
			return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, limit)
		}
		return nil
	}
}
