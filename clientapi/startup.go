package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
)

type updateVariableRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// ListVariables returns the startup variables and startup command.
func (c *Client) ListVariables(ctx context.Context, serverID string) (*Startup, error) {
	return endpoint.Decode[Startup](ctx, c.caller, endpoint.Call{
		Op:     "list variables",
		Method: http.MethodGet,
		Route:  endpoint.Route(servers, serverID, "startup"),
	})
}

// UpdateVariable sets the environment variable key to value.
func (c *Client) UpdateVariable(ctx context.Context, serverID, key, value string) (*Variable, error) {
	return endpoint.Attributes[Variable](ctx, c.caller, endpoint.Call{
		Op:      "update variable",
		Method:  http.MethodPut,
		Route:   endpoint.Route(servers, serverID, "startup", "variable"),
		Payload: updateVariableRequest{Key: key, Value: value},
	})
}
