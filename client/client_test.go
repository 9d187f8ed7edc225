package client_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/adamwoolhether/pterom/client"
)

const testToken = "ptlc_test"

type payload struct {
	Body string `json:"body"`
}

// recorded is the part of a request the tests assert on.
type recorded struct {
	method string
	path   string
	header http.Header
	body   []byte
}

// newRecorder starts a server that records the last request and
// answers with status and body.
func newRecorder(t *testing.T, status int, body string) (*httptest.Server, *atomic.Pointer[recorded]) {
	t.Helper()

	var last atomic.Pointer[recorded]
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		last.Store(&recorded{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: b})

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)

	return ts, &last
}

func mustBuild(t *testing.T, host string, opts ...client.Option) *client.Client {
	t.Helper()

	c, err := client.Build(host, testToken, opts...)
	if err != nil {
		t.Fatalf("building client: %v", err)
	}

	return c
}

func TestBuild_Validation(t *testing.T) {
	testCases := map[string]struct {
		host  string
		token string
		opts  []client.Option
	}{
		"emptyHost":      {host: "", token: testToken},
		"relativeHost":   {host: "panel.example.com", token: testToken},
		"unsupported":    {host: "ftp://panel.example.com", token: testToken},
		"emptyToken":     {host: "https://panel.example.com", token: ""},
		"nilClient":      {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithClient(nil)}},
		"nilTransport":   {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithTransport(nil)}},
		"negTimeout":     {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithTimeout(-time.Second)}},
		"negRedirects":   {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithMaxRedirects(-1)}},
		"emptyAccept":    {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithAccept("")}},
		"nilRegisterer":  {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithMetrics(nil)}},
		"nilTracerProvd": {host: "https://panel.example.com", token: testToken, opts: []client.Option{client.WithTracerProvider(nil)}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := client.Build(tc.host, tc.token, tc.opts...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestClient_HostNormalization(t *testing.T) {
	ts, last := newRecorder(t, http.StatusOK, `{}`)

	for _, host := range []string{ts.URL, ts.URL + "/"} {
		t.Run(host, func(t *testing.T) {
			c := mustBuild(t, host)

			if !strings.HasSuffix(c.Host(), "/") || strings.HasSuffix(c.Host(), "//") {
				t.Errorf("host %q must end in exactly one slash", c.Host())
			}

			if _, err := c.Do(t.Context(), http.MethodGet, "api/client/account"); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if got := last.Load().path; got != "/api/client/account" {
				t.Errorf("exp path %q, got %q", "/api/client/account", got)
			}
		})
	}
}

func TestClient_URL(t *testing.T) {
	testCases := map[string]struct {
		host  string
		route string
		exp   string
	}{
		"noSlash":       {host: "https://p.example.com", route: "api/client", exp: "https://p.example.com/api/client"},
		"trailingSlash": {host: "https://p.example.com/", route: "api/client", exp: "https://p.example.com/api/client"},
		"leadingSlash":  {host: "https://p.example.com/", route: "/api/client", exp: "https://p.example.com/api/client"},
		"subPath":       {host: "https://example.com/panel", route: "api/client", exp: "https://example.com/panel/api/client"},
		"withQuery":     {host: "https://p.example.com", route: "api/x?file=%2Fa", exp: "https://p.example.com/api/x?file=%2Fa"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := mustBuild(t, tc.host)

			if got := c.URL(tc.route); got != tc.exp {
				t.Errorf("exp url %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestClient_Request_Headers(t *testing.T) {
	ts, last := newRecorder(t, http.StatusOK, `{}`)

	c := mustBuild(t, ts.URL, client.WithUserAgent("pterom-test/1.0"))

	_, err := c.Do(t.Context(), http.MethodGet, "api/client",
		client.WithRequest(client.WithHeaders(map[string][]string{
			"X-Custom":      {"yes"},
			"Authorization": {"Bearer hijacked"},
		})),
	)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	h := last.Load().header

	exp := map[string]string{
		"Authorization": "Bearer " + testToken,
		"Accept":        client.DefaultAccept,
		"Content-Type":  "application/json",
		"User-Agent":    "pterom-test/1.0",
		"X-Custom":      "yes",
	}
	for k, v := range exp {
		if got := h.Get(k); got != v {
			t.Errorf("header %s: exp %q, got %q", k, v, got)
		}
	}

	if h.Get("X-Request-Id") == "" {
		t.Error("expected an X-Request-Id header")
	}
}

func TestClient_WithAccept(t *testing.T) {
	ts, last := newRecorder(t, http.StatusOK, ``)

	c := mustBuild(t, ts.URL, client.WithAccept("application/json"))

	if _, err := c.Do(t.Context(), http.MethodGet, "api/client"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := last.Load().header.Get("Accept"); got != "application/json" {
		t.Errorf("exp Accept %q, got %q", "application/json", got)
	}
}

func TestClient_Do(t *testing.T) {
	testCases := map[string]struct {
		status  int
		body    string
		expErr  error
		expAuth bool
	}{
		"ok":                {status: http.StatusOK, body: `{"body":"hi"}`},
		"created":           {status: http.StatusCreated, body: `{"body":"hi"}`},
		"accepted":          {status: http.StatusAccepted},
		"noContent":         {status: http.StatusNoContent},
		"badRequest":        {status: http.StatusBadRequest, body: `{"errors":[]}`, expErr: client.ErrUnexpectedStatusCode},
		"unauthorized":      {status: http.StatusUnauthorized, expErr: client.ErrUnexpectedStatusCode, expAuth: true},
		"forbidden":         {status: http.StatusForbidden, expErr: client.ErrUnexpectedStatusCode, expAuth: true},
		"notFound":          {status: http.StatusNotFound, expErr: client.ErrUnexpectedStatusCode},
		"internal":          {status: http.StatusInternalServerError, expErr: client.ErrUnexpectedStatusCode},
		"teapot":            {status: http.StatusTeapot, expErr: client.ErrUnexpectedStatusCode},
		"notModified":       {status: http.StatusNotModified, expErr: client.ErrUnexpectedStatusCode},
		"serviceUnavailabe": {status: http.StatusServiceUnavailable, expErr: client.ErrUnexpectedStatusCode},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ts, _ := newRecorder(t, tc.status, tc.body)
			c := mustBuild(t, ts.URL)

			resp, err := c.Do(t.Context(), http.MethodGet, "api/client")

			if tc.expErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				if resp.StatusCode != tc.status {
					t.Errorf("exp status %d, got %d", tc.status, resp.StatusCode)
				}
				if string(resp.Body) != tc.body {
					t.Errorf("exp body %q, got %q", tc.body, resp.Body)
				}
				return
			}

			if !errors.Is(err, tc.expErr) {
				t.Fatalf("exp err %v, got: %v", tc.expErr, err)
			}

			var statusErr *client.UnexpectedStatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *UnexpectedStatusError, got %T", err)
			}
			if statusErr.StatusCode != tc.status {
				t.Errorf("exp status %d, got %d", tc.status, statusErr.StatusCode)
			}
			if statusErr.Body != tc.body {
				t.Errorf("exp body %q, got %q", tc.body, statusErr.Body)
			}
			if got := errors.Is(err, client.ErrAuthFailure); got != tc.expAuth {
				t.Errorf("exp auth failure %t, got %t", tc.expAuth, got)
			}
		})
	}
}

func TestClient_Do_Payloads(t *testing.T) {
	testCases := map[string]struct {
		opts    []client.RequestOption
		expBody string
	}{
		"noBody": {
			expBody: "",
		},
		"json": {
			opts:    []client.RequestOption{client.WithPayload(payload{Body: "hey there"})},
			expBody: `{"body":"hey there"}` + "\n",
		},
		"raw": {
			opts:    []client.RequestOption{client.WithRawPayload("line one\nline two")},
			expBody: "line one\nline two",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ts, last := newRecorder(t, http.StatusNoContent, "")
			c := mustBuild(t, ts.URL)

			if _, err := c.Do(t.Context(), http.MethodPost, "api/x", client.WithRequest(tc.opts...)); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}

			if diff := cmp.Diff(tc.expBody, string(last.Load().body)); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_Do_PayloadExclusive(t *testing.T) {
	c := mustBuild(t, "https://panel.example.com")

	_, err := c.Do(t.Context(), http.MethodPost, "api/x", client.WithRequest(
		client.WithPayload(payload{}),
		client.WithRawPayload("raw"),
	))
	if err == nil {
		t.Fatal("expected error when combining payload and raw payload")
	}
}

func TestClient_Do_Destination(t *testing.T) {
	ts, _ := newRecorder(t, http.StatusOK, `{"body":"echo","id":12345678901234567}`)
	c := mustBuild(t, ts.URL)

	var got payload
	if _, err := c.Do(t.Context(), http.MethodGet, "api/x", client.WithDestination(&got)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.Body != "echo" {
		t.Errorf("exp body %q, got %q", "echo", got.Body)
	}

	raw := map[string]any{}
	if _, err := c.Do(t.Context(), http.MethodGet, "api/x", client.WithDestination(&raw), client.WithJSONNumb()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	n, ok := raw["id"].(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", raw["id"])
	}
	if n.String() != "12345678901234567" {
		t.Errorf("exp 12345678901234567, got %s", n)
	}
}

func TestClient_Do_InvalidMethod(t *testing.T) {
	c := mustBuild(t, "https://panel.example.com")

	for _, m := range []string{"", "get", http.MethodHead, http.MethodOptions, "FETCH"} {
		if _, err := c.Do(t.Context(), m, "api/x"); !errors.Is(err, client.ErrInvalidMethod) {
			t.Errorf("method %q: exp ErrInvalidMethod, got: %v", m, err)
		}
	}
}

func TestClient_Do_NoResponse(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	host := ts.URL
	ts.Close()

	c := mustBuild(t, host)

	_, err := c.Do(t.Context(), http.MethodGet, "api/x")
	if err == nil {
		t.Fatal("expected error from closed server")
	}

	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		t.Errorf("expected *url.Error, got %T: %v", err, err)
	}

	var statusErr *client.UnexpectedStatusError
	if errors.As(err, &statusErr) {
		t.Error("a request without response must not carry a status")
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	c := mustBuild(t, ts.URL, client.WithTimeout(50*time.Millisecond))

	_, err := c.Do(t.Context(), http.MethodGet, "api/x")

	var urlErr *url.Error
	if !errors.As(err, &urlErr) || !urlErr.Timeout() {
		t.Errorf("expected timeout *url.Error, got: %v", err)
	}
}

func TestClient_Do_ErrorBodyCapped(t *testing.T) {
	large := strings.Repeat("x", 64<<10)

	ts, _ := newRecorder(t, http.StatusInternalServerError, large)
	c := mustBuild(t, ts.URL)

	_, err := c.Do(t.Context(), http.MethodGet, "api/x")

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *UnexpectedStatusError, got: %v", err)
	}
	if len(statusErr.Body) != 4<<10 {
		t.Errorf("exp error body capped at %d, got %d", 4<<10, len(statusErr.Body))
	}
}

// redirectChain redirects /hop/n to /hop/n-1 and answers 200 at /hop/0.
func redirectChain(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/hop/"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if n == 0 {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/hop/%d", n-1), http.StatusFound)
	}))
	t.Cleanup(ts.Close)

	return ts
}

func TestClient_Redirects(t *testing.T) {
	ts := redirectChain(t)

	testCases := map[string]struct {
		opts      []client.Option
		hops      int
		expErr    error
		expStatus int
	}{
		"defaultWithinCap":   {hops: 5},
		"defaultExceedsCap":  {hops: 6, expErr: client.ErrTooManyRedirects},
		"customCap":          {opts: []client.Option{client.WithMaxRedirects(1)}, hops: 2, expErr: client.ErrTooManyRedirects},
		"customCapWithin":    {opts: []client.Option{client.WithMaxRedirects(1)}, hops: 1},
		"noFollowReturns302": {opts: []client.Option{client.WithNoFollowRedirects()}, hops: 1, expStatus: http.StatusFound},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c := mustBuild(t, ts.URL, tc.opts...)

			_, err := c.Do(t.Context(), http.MethodGet, fmt.Sprintf("hop/%d", tc.hops))

			switch {
			case tc.expErr != nil:
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v, got: %v", tc.expErr, err)
				}
			case tc.expStatus != 0:
				var statusErr *client.UnexpectedStatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != tc.expStatus {
					t.Errorf("exp status %d, got: %v", tc.expStatus, err)
				}
			default:
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
			}
		})
	}
}

func TestClient_WithClient(t *testing.T) {
	ts, _ := newRecorder(t, http.StatusOK, "")

	var called atomic.Bool
	hc := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			called.Store(true)
			return http.DefaultTransport.RoundTrip(r)
		}),
	}

	c := mustBuild(t, ts.URL, client.WithClient(hc))

	if _, err := c.Do(t.Context(), http.MethodGet, "api/x"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !called.Load() {
		t.Error("expected the supplied client's transport to be used")
	}
	if hc.CheckRedirect != nil {
		t.Error("the supplied client must not be mutated")
	}
}

func TestClient_WithTransportOverridesClient(t *testing.T) {
	ts, _ := newRecorder(t, http.StatusOK, "")

	var clientRT, customRT atomic.Bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		clientRT.Store(true)
		return http.DefaultTransport.RoundTrip(r)
	})}
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		customRT.Store(true)
		return http.DefaultTransport.RoundTrip(r)
	})

	c := mustBuild(t, ts.URL, client.WithClient(hc), client.WithTransport(rt))

	if _, err := c.Do(t.Context(), http.MethodGet, "api/x"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if clientRT.Load() || !customRT.Load() {
		t.Errorf("exp only WithTransport to be used; client=%t custom=%t", clientRT.Load(), customRT.Load())
	}
}

func TestClient_WithLogger(t *testing.T) {
	ts, _ := newRecorder(t, http.StatusOK, "")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := mustBuild(t, ts.URL, client.WithLogger(logger))

	if _, err := c.Do(t.Context(), http.MethodGet, "api/client/account"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"panel request", "route=api/client/account", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got: %s", want, out)
		}
	}
}

func TestClient_WithMetrics(t *testing.T) {
	ts, _ := newRecorder(t, http.StatusNotFound, "")

	reg := prometheus.NewRegistry()

	// Two clients on one registry share collectors.
	c1 := mustBuild(t, ts.URL, client.WithMetrics(reg))
	c2 := mustBuild(t, ts.URL, client.WithMetrics(reg))

	for _, c := range []*client.Client{c1, c2} {
		if _, err := c.Do(t.Context(), http.MethodGet, "api/x"); err == nil {
			t.Fatal("expected 404 error")
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gathering metrics: %v", err)
	}

	var total float64
	for _, mf := range families {
		if mf.GetName() != "pterom_client_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "code" && lp.GetValue() == "404" {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}

	if total != 2 {
		t.Errorf("exp 2 requests with code 404, got %v", total)
	}
}

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
