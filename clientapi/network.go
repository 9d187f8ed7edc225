package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

type allocationNoteRequest struct {
	Notes string `json:"notes" validate:"max=255"`
}

func allocationsRoute(serverID string, segments ...any) string {
	return endpoint.Route(servers, append([]any{serverID, "network", "allocations"}, segments...)...)
}

func (c *Client) ListAllocations(ctx context.Context, serverID string) (*resource.List[Allocation], error) {
	return endpoint.List[Allocation](ctx, c.caller, endpoint.Call{
		Op:     "list allocations",
		Method: http.MethodGet,
		Route:  allocationsRoute(serverID),
	})
}

// AssignAllocation assigns a free allocation to the server. The node
// must have automatic allocation enabled.
func (c *Client) AssignAllocation(ctx context.Context, serverID string) (*Allocation, error) {
	return endpoint.Attributes[Allocation](ctx, c.caller, endpoint.Call{
		Op:     "assign allocation",
		Method: http.MethodPost,
		Route:  allocationsRoute(serverID),
	})
}

func (c *Client) SetAllocationNote(ctx context.Context, serverID string, allocationID int, note string) (*Allocation, error) {
	return endpoint.Attributes[Allocation](ctx, c.caller, endpoint.Call{
		Op:      "set allocation note",
		Method:  http.MethodPost,
		Route:   allocationsRoute(serverID, allocationID),
		Payload: allocationNoteRequest{Notes: note},
	})
}

func (c *Client) SetPrimaryAllocation(ctx context.Context, serverID string, allocationID int) (*Allocation, error) {
	return endpoint.Attributes[Allocation](ctx, c.caller, endpoint.Call{
		Op:     "set primary allocation",
		Method: http.MethodPost,
		Route:  allocationsRoute(serverID, allocationID, "primary"),
	})
}

func (c *Client) UnassignAllocation(ctx context.Context, serverID string, allocationID int) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "unassign allocation",
		Method: http.MethodDelete,
		Route:  allocationsRoute(serverID, allocationID),
	})
}
