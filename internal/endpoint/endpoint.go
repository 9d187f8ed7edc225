// Package endpoint holds the call shape shared by the app and
// clientapi packages: validate the payload, dispatch once, classify
// any failure, then pull the wanted part out of the body.
package endpoint

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/adamwoolhether/pterom/client"
	"github.com/adamwoolhether/pterom/client/apierr"
	"github.com/adamwoolhether/pterom/resource"
	"github.com/adamwoolhether/pterom/validate"
)

// Caller binds a dispatcher to the API scope its token unlocks.
type Caller struct {
	Client *client.Client
	Scope  apierr.Scope
}

// Call is one endpoint invocation.
type Call struct {
	Op     string
	Method string
	Route  string
	// Payload is JSON encoded after validation. Nil sends no body.
	Payload any
	// Raw is sent verbatim when set.
	Raw *string
}

// Do dispatches call and returns the successful response.
func (c Caller) Do(ctx context.Context, call Call) (*client.Response, error) {
	var reqOpts []client.RequestOption

	switch {
	case call.Raw != nil:
		reqOpts = append(reqOpts, client.WithRawPayload(*call.Raw))
	case call.Payload != nil:
		if err := validate.Check(call.Payload); err != nil {
			return nil, fmt.Errorf("pterom %s: %s: %w", c.Scope, call.Op, err)
		}
		reqOpts = append(reqOpts, client.WithPayload(call.Payload))
	}

	resp, err := c.Client.Do(ctx, call.Method, call.Route, client.WithRequest(reqOpts...))
	if err != nil {
		return nil, apierr.Wrap(err, c.Scope, call.Op)
	}

	return resp, nil
}

// Exec dispatches call and discards the body.
func (c Caller) Exec(ctx context.Context, call Call) error {
	_, err := c.Do(ctx, call)
	return err
}

// Decode dispatches call and decodes the whole body into a T.
func Decode[T any](ctx context.Context, c Caller, call Call) (*T, error) {
	resp, err := c.Do(ctx, call)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := resp.Decode(out); err != nil {
		return nil, fmt.Errorf("pterom %s: %s: %w", c.Scope, call.Op, err)
	}

	return out, nil
}

// Attributes dispatches call and returns the "attributes" of the
// object in the body.
func Attributes[T any](ctx context.Context, c Caller, call Call) (*T, error) {
	obj, err := Decode[resource.Object[T]](ctx, c, call)
	if err != nil {
		return nil, err
	}

	return &obj.Attributes, nil
}

// List dispatches call and returns the list document in the body.
func List[T any](ctx context.Context, c Caller, call Call) (*resource.List[T], error) {
	return Decode[resource.List[T]](ctx, c, call)
}

// URL dispatches call and returns the signed URL in the body.
func URL(ctx context.Context, c Caller, call Call) (string, error) {
	signed, err := Attributes[resource.SignedURL](ctx, c, call)
	if err != nil {
		return "", err
	}

	return signed.URL, nil
}

// Route appends escaped segments to base, a literal route prefix such
// as "api/client/servers". Segments are strings or ints.
func Route(base string, segments ...any) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, base)

	for _, seg := range segments {
		switch v := seg.(type) {
		case string:
			parts = append(parts, url.PathEscape(v))
		case int:
			parts = append(parts, strconv.Itoa(v))
		default:
			parts = append(parts, url.PathEscape(fmt.Sprint(v)))
		}
	}

	return strings.Join(parts, "/")
}
