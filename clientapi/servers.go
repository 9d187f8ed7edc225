package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
)

// PowerSignal is a power action sent to a server.
type PowerSignal string

const (
	PowerStart   PowerSignal = "start"
	PowerStop    PowerSignal = "stop"
	PowerRestart PowerSignal = "restart"
	PowerKill    PowerSignal = "kill"
)

type commandRequest struct {
	Command string `json:"command" validate:"required"`
}

type powerRequest struct {
	Signal PowerSignal `json:"signal" validate:"required,oneof=start stop restart kill"`
}

type renameRequest struct {
	Name        string  `json:"name" validate:"required,max=191"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) ServerDetails(ctx context.Context, serverID string) (*Server, error) {
	return endpoint.Attributes[Server](ctx, c.caller, endpoint.Call{
		Op:     "server details",
		Method: http.MethodGet,
		Route:  endpoint.Route(servers, serverID),
	})
}

// ResourceUsage returns the live state and resource usage of a server.
func (c *Client) ResourceUsage(ctx context.Context, serverID string) (*Resources, error) {
	return endpoint.Attributes[Resources](ctx, c.caller, endpoint.Call{
		Op:     "resource usage",
		Method: http.MethodGet,
		Route:  endpoint.Route(servers, serverID, "resources"),
	})
}

// SendCommand runs a console command. The server must be running; an
// offline server answers with 502.
func (c *Client) SendCommand(ctx context.Context, serverID, command string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "send command",
		Method:  http.MethodPost,
		Route:   endpoint.Route(servers, serverID, "command"),
		Payload: commandRequest{Command: command},
	})
}

func (c *Client) ChangePowerState(ctx context.Context, serverID string, signal PowerSignal) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "change power state",
		Method:  http.MethodPost,
		Route:   endpoint.Route(servers, serverID, "power"),
		Payload: powerRequest{Signal: signal},
	})
}

func (c *Client) RenameServer(ctx context.Context, serverID, name string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "rename server",
		Method:  http.MethodPost,
		Route:   endpoint.Route(servers, serverID, "settings", "rename"),
		Payload: renameRequest{Name: name},
	})
}

func (c *Client) ReinstallServer(ctx context.Context, serverID string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "reinstall server",
		Method: http.MethodPost,
		Route:  endpoint.Route(servers, serverID, "settings", "reinstall"),
	})
}
