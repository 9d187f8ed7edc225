// Package app wraps the panel's application API, the administrative
// surface unlocked by an application-scope token: users, nodes and
// their allocations, locations, servers, nests and eggs.
//
// Every method performs exactly one request. Failures are classified
// into [*apierr.Error] values with scope "app"; payload validation
// failures are returned as [validate.FieldErrors] before anything is sent.
package app

import (
	"github.com/adamwoolhether/pterom/client"
	"github.com/adamwoolhether/pterom/client/apierr"
	"github.com/adamwoolhether/pterom/internal/endpoint"
)

const base = "api/application"

// Client is the application API client.
type Client struct {
	caller endpoint.Caller
}

// New builds a Client for host using an application-scope token.
func New(host, token string, opts ...client.Option) (*Client, error) {
	c, err := client.Build(host, token, opts...)
	if err != nil {
		return nil, err
	}

	return NewFromClient(c), nil
}

// NewFromClient wraps an existing dispatcher.
func NewFromClient(c *client.Client) *Client {
	return &Client{caller: endpoint.Caller{Client: c, Scope: apierr.ScopeApp}}
}

// Dispatcher returns the underlying dispatcher.
func (a *Client) Dispatcher() *client.Client {
	return a.caller.Client
}
