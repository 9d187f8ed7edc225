package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// maxErrBodySize caps the amount of response body read when
// building an error for a non-2xx status code. This prevents
// unbounded memory usage when a large error page arrives.
const maxErrBodySize = 4 << 10 // 4KB

// DefaultAccept is the vendor media type the panel API expects.
const DefaultAccept = "Application/vnd.pterodactyl.v1+json"

// defaultMaxRedirects is the number of redirects followed before
// the request fails.
const defaultMaxRedirects = 5

// execFn represents a func to operate on a successful response.
type execFn func(response *http.Response) error

var (
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrInvalidMethod is returned for verbs the panel API does not use.
	ErrInvalidMethod = errors.New("invalid http method")
	// ErrTooManyRedirects is returned once the redirect cap is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// UnexpectedStatusError is returned when the panel responds with a
// status outside the 2xx range. It always carries the captured status.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

// roundTripError marks a failure raised by the http.Client itself, after
// the request was built: dial, DNS, TLS, timeout, redirect cap or an
// aborted exchange. Only these classify as [NoResponse].
type roundTripError struct {
	err error
}

func (e *roundTripError) Error() string {
	return e.err.Error()
}

func (e *roundTripError) Unwrap() error {
	return e.err
}

// Response is the outcome of a successful dispatch.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// Decode unmarshals the raw body into dest. An empty body is a no-op.
func (r *Response) Decode(dest any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	return nil
}

func statusError(code int, body []byte) *UnexpectedStatusError {
	err := ErrUnexpectedStatusCode
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		err = fmt.Errorf("%w: %w", ErrAuthFailure, ErrUnexpectedStatusCode)
	}

	return &UnexpectedStatusError{
		StatusCode: code,
		Body:       string(body),
		Err:        err,
	}
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodPatch:
		return true
	}

	return false
}
