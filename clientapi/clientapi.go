// Package clientapi wraps the panel's client API, the end-user surface
// unlocked by a client-scope token: the account, and the servers the
// account can reach with their files, databases, schedules, network
// allocations, subusers, backups and startup variables.
//
// Every method performs exactly one request. Failures are classified
// into [*apierr.Error] values with scope "client".
package clientapi

import (
	"github.com/adamwoolhether/pterom/client"
	"github.com/adamwoolhether/pterom/client/apierr"
	"github.com/adamwoolhether/pterom/internal/endpoint"
)

const (
	base    = "api/client"
	servers = base + "/servers"
)

// Client is the client API client.
type Client struct {
	caller endpoint.Caller
}

// New builds a Client for host using a client-scope token.
func New(host, token string, opts ...client.Option) (*Client, error) {
	c, err := client.Build(host, token, opts...)
	if err != nil {
		return nil, err
	}

	return NewFromClient(c), nil
}

// NewFromClient wraps an existing dispatcher.
func NewFromClient(c *client.Client) *Client {
	return &Client{caller: endpoint.Caller{Client: c, Scope: apierr.ScopeClient}}
}

// Dispatcher returns the underlying dispatcher, e.g. to fetch signed
// download URLs with [client.Client.Download].
func (c *Client) Dispatcher() *client.Client {
	return c.caller.Client
}
