// Package apierr is the error taxonomy shared by every panel endpoint.
// Each failed call is classified into one [Kind] and reported as an
// [*Error] naming the API scope and the operation that failed.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/adamwoolhether/pterom/client"
)

// Scope identifies which panel API a call went to.
type Scope string

const (
	ScopeApp    Scope = "app"
	ScopeClient Scope = "client"
)

// Kind is the class of a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	KindNoResponse
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
	KindBadGateway
	KindUnavailable
)

// Sentinels for errors.Is, one per Kind.
var (
	ErrUnknown      = errors.New("unknown error")
	ErrNoResponse   = errors.New("no response")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrBadGateway   = errors.New("bad gateway")
	ErrUnavailable  = errors.New("service unavailable")
)

type kindInfo struct {
	status   int
	sentinel error
	app      string
	client   string
}

var kinds = map[Kind]kindInfo{
	KindBadRequest:   {http.StatusBadRequest, ErrBadRequest, "invalid request", "the request was invalid"},
	KindUnauthorized: {http.StatusUnauthorized, ErrUnauthorized, "invalid authentication", "the request did not include an authentication token or the token was expired"},
	KindForbidden:    {http.StatusForbidden, ErrForbidden, "forbidden request", "the request was forbidden as it did not have permission to access the requested resource"},
	KindNotFound:     {http.StatusNotFound, ErrNotFound, "resource not found", "the requested resource was not found"},
	KindConflict:     {http.StatusConflict, ErrConflict, "conflicted request", "the request could not be completed due to a conflict"},
	KindInternal:     {http.StatusInternalServerError, ErrInternal, "server side internal error", "the request was not completed due to an internal error on the server side"},
	KindBadGateway:   {http.StatusBadGateway, ErrBadGateway, "server offline or bad gateway", "the server is offline or the gateway is bad"},
	KindUnavailable:  {http.StatusServiceUnavailable, ErrUnavailable, "server unavailable", "the server was unavailable"},
	KindUnknown:      {0, ErrUnknown, "unknown error occurred", "an unknown error occurred"},
	KindNoResponse:   {0, ErrNoResponse, "no response from server", "the server did not respond"},
}

// Status returns the HTTP status a Kind is keyed on, or 0 for
// KindUnknown and KindNoResponse.
func (k Kind) Status() int {
	return kinds[k].status
}

func (k Kind) String() string {
	return kinds[k].sentinel.Error()
}

// Error is a classified panel failure.
type Error struct {
	Scope Scope
	Kind  Kind
	Op    string
	// Status is the HTTP status received, or 0 when none was.
	Status int
	// Err is the transport error that was classified.
	Err error
}

func (e *Error) Error() string {
	info := kinds[e.Kind]

	desc := info.app
	if e.Scope == ScopeClient {
		desc = info.client
	}

	var code string
	switch {
	case e.Kind == KindNoResponse:
		code = "-"
	case e.Kind == KindUnknown:
		code = "*"
		if e.Status != 0 {
			code = "*" + strconv.Itoa(e.Status)
		}
	default:
		code = strconv.Itoa(e.Status)
	}

	return fmt.Sprintf("pterom %s: %s: http error (%s): %s", e.Scope, e.Op, code, desc)
}

// Unwrap exposes both the Kind sentinel and the classified error.
func (e *Error) Unwrap() []error {
	errs := []error{kinds[e.Kind].sentinel}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// Table returns the classification table for op: one entry per known
// status, plus [client.NoResponse] and [client.Wildcard].
func Table(scope Scope, op string, cause error) client.Table {
	table := make(client.Table, len(kinds))

	for kind, info := range kinds {
		if info.status == 0 {
			continue
		}

		table[client.Key(info.status)] = func(status client.Key) error {
			return &Error{Scope: scope, Kind: kind, Op: op, Status: int(status), Err: cause}
		}
	}

	table[client.NoResponse] = func(client.Key) error {
		return &Error{Scope: scope, Kind: KindNoResponse, Op: op, Err: cause}
	}

	table[client.Wildcard] = func(status client.Key) error {
		e := &Error{Scope: scope, Kind: KindUnknown, Op: op, Err: cause}
		if status != client.NoResponse {
			e.Status = int(status)
		}
		return e
	}

	return table
}

// Wrap classifies err, the failure of op against scope. nil stays nil
// and errors that did not come from the transport are returned as is.
func Wrap(err error, scope Scope, op string) error {
	if err == nil {
		return nil
	}

	return client.Classify(err, Table(scope, op, err))
}
