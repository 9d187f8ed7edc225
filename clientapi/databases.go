package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

type createDatabaseRequest struct {
	Database string `json:"database" validate:"required,max=48"`
	Remote   string `json:"remote" validate:"required"`
}

func (c *Client) ListDatabases(ctx context.Context, serverID string) (*resource.List[Database], error) {
	return endpoint.List[Database](ctx, c.caller, endpoint.Call{
		Op:     "list databases",
		Method: http.MethodGet,
		Route:  endpoint.Route(servers, serverID, "databases"),
	})
}

// CreateDatabase creates a database reachable from remote, a host
// pattern such as "%" or "10.0.0.%".
func (c *Client) CreateDatabase(ctx context.Context, serverID, name, remote string) (*Database, error) {
	return endpoint.Attributes[Database](ctx, c.caller, endpoint.Call{
		Op:      "create database",
		Method:  http.MethodPost,
		Route:   endpoint.Route(servers, serverID, "databases"),
		Payload: createDatabaseRequest{Database: name, Remote: remote},
	})
}

func (c *Client) RotateDatabasePassword(ctx context.Context, serverID, databaseID string) (*Database, error) {
	return endpoint.Attributes[Database](ctx, c.caller, endpoint.Call{
		Op:     "rotate database password",
		Method: http.MethodPost,
		Route:  endpoint.Route(servers, serverID, "databases", databaseID, "rotate-password"),
	})
}

func (c *Client) DeleteDatabase(ctx context.Context, serverID, databaseID string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "delete database",
		Method: http.MethodDelete,
		Route:  endpoint.Route(servers, serverID, "databases", databaseID),
	})
}
