package app

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

// UpdateServerDetailsRequest is the payload of [Client.UpdateServerDetails].
type UpdateServerDetailsRequest struct {
	Name        string  `json:"name" validate:"required,max=191"`
	User        int     `json:"user" validate:"required,gt=0"`
	ExternalID  *string `json:"external_id,omitempty" validate:"omitempty,max=191"`
	Description *string `json:"description,omitempty"`
}

func (a *Client) ListServers(ctx context.Context) (*resource.List[Server], error) {
	return endpoint.List[Server](ctx, a.caller, endpoint.Call{
		Op:     "list servers",
		Method: http.MethodGet,
		Route:  base + "/servers",
	})
}

func (a *Client) ServerDetails(ctx context.Context, serverID int) (*Server, error) {
	return endpoint.Attributes[Server](ctx, a.caller, endpoint.Call{
		Op:     "server details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/servers", serverID),
	})
}

// ServerDetailsByExternalID looks a server up by the ID an external
// system assigned it.
func (a *Client) ServerDetailsByExternalID(ctx context.Context, externalID string) (*Server, error) {
	return endpoint.Attributes[Server](ctx, a.caller, endpoint.Call{
		Op:     "server details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/servers/external", externalID),
	})
}

func (a *Client) UpdateServerDetails(ctx context.Context, serverID int, req UpdateServerDetailsRequest) (*Server, error) {
	return endpoint.Attributes[Server](ctx, a.caller, endpoint.Call{
		Op:      "update server details",
		Method:  http.MethodPatch,
		Route:   endpoint.Route(base+"/servers", serverID, "details"),
		Payload: req,
	})
}

func (a *Client) SuspendServer(ctx context.Context, serverID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "suspend server",
		Method: http.MethodPost,
		Route:  endpoint.Route(base+"/servers", serverID, "suspend"),
	})
}

func (a *Client) UnsuspendServer(ctx context.Context, serverID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "unsuspend server",
		Method: http.MethodPost,
		Route:  endpoint.Route(base+"/servers", serverID, "unsuspend"),
	})
}

func (a *Client) ReinstallServer(ctx context.Context, serverID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "reinstall server",
		Method: http.MethodPost,
		Route:  endpoint.Route(base+"/servers", serverID, "reinstall"),
	})
}

// DeleteServer removes a server. force deletes the panel record even
// when the node cannot be reached.
func (a *Client) DeleteServer(ctx context.Context, serverID int, force bool) error {
	route := endpoint.Route(base+"/servers", serverID)
	if force {
		route += "/force"
	}

	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "delete server",
		Method: http.MethodDelete,
		Route:  route,
	})
}
