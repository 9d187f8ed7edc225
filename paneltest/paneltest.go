// Package paneltest provides a fake panel for tests: an httptest
// server that serves canned replies per route and records every
// request it receives.
package paneltest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Request is a request as the panel saw it.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Decode unmarshals the recorded body into v.
func (r Request) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Reply is a canned response. Body is JSON encoded unless it is a
// string or []byte, which are written as is. A zero Status means 200.
type Reply struct {
	Status int
	Body   any
}

// Server is a fake panel.
type Server struct {
	*httptest.Server

	t     testing.TB
	token string

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
}

// Option configures a [Server].
type Option func(*Server)

// WithToken makes the panel answer 401 to requests that do not carry
// token as a bearer credential.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// New starts a fake panel, closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		t:       t,
		replies: make(map[string]Reply),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	return s
}

// Handle registers reply for method and path, e.g.
// Handle(http.MethodGet, "/api/client/account", ...). Unregistered
// routes answer 404.
func (s *Server) Handle(method, path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replies[key(method, path)] = reply
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)

	return out
}

// Last returns the most recent request. It fails the test if there
// was none.
func (s *Server) Last() Request {
	s.t.Helper()

	reqs := s.Requests()
	if len(reqs) == 0 {
		s.t.Fatal("paneltest: no requests received")
	}

	return reqs[len(reqs)-1]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	reply, ok := s.replies[key(r.Method, r.URL.EscapedPath())]
	s.mu.Unlock()

	if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
		reply, ok = Error(http.StatusUnauthorized, "AuthenticationException", "Unauthenticated."), true
	}
	if !ok {
		reply = Error(http.StatusNotFound, "NotFoundHttpException", "The requested resource could not be found on the server.")
	}

	if err := write(w, reply); err != nil {
		s.t.Errorf("paneltest: writing reply: %v", err)
	}
}

func write(w http.ResponseWriter, reply Reply) error {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}

	var b []byte
	switch v := reply.Body.(type) {
	case nil:
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		var err error
		if b, err = json.Marshal(v); err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return nil
	}

	_, err := w.Write(b)
	return err
}

func key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Object wraps attributes in a panel object document.
func Object(object string, attributes any) map[string]any {
	return map[string]any{"object": object, "attributes": attributes}
}

// List wraps attributes in a panel list document of object items.
func List(object string, attributes ...any) map[string]any {
	data := make([]any, len(attributes))
	for i, a := range attributes {
		data[i] = Object(object, a)
	}

	return map[string]any{
		"object": "list",
		"data":   data,
		"meta": map[string]any{
			"pagination": map[string]any{
				"total":        len(data),
				"count":        len(data),
				"per_page":     50,
				"current_page": 1,
				"total_pages":  1,
				"links":        []any{},
			},
		},
	}
}

// Error is a reply in the panel's error document format.
func Error(status int, code, detail string) Reply {
	return Reply{
		Status: status,
		Body: map[string]any{
			"errors": []map[string]string{{
				"code":   code,
				"status": strconv.Itoa(status),
				"detail": detail,
			}},
		},
	}
}
