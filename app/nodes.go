package app

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

// CreateNodeRequest is the payload of [Client.CreateNode].
type CreateNodeRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	LocationID         int    `json:"location_id" validate:"required,gt=0"`
	FQDN               string `json:"fqdn" validate:"required,fqdn|ip"`
	Scheme             string `json:"scheme" validate:"required,oneof=http https"`
	Memory             int    `json:"memory" validate:"gte=0"`
	MemoryOverallocate int    `json:"memory_overallocate" validate:"gte=-1"`
	Disk               int    `json:"disk" validate:"gte=0"`
	DiskOverallocate   int    `json:"disk_overallocate" validate:"gte=-1"`
	UploadSize         int    `json:"upload_size" validate:"gte=1,lte=1024"`
	DaemonSFTP         int    `json:"daemon_sftp" validate:"required,gt=0,lte=65535"`
	DaemonListen       int    `json:"daemon_listen" validate:"required,gt=0,lte=65535"`
}

// UpdateNodeRequest is the payload of [Client.UpdateNode].
type UpdateNodeRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	Description        string `json:"description"`
	LocationID         int    `json:"location_id" validate:"required,gt=0"`
	FQDN               string `json:"fqdn" validate:"required,fqdn|ip"`
	Scheme             string `json:"scheme" validate:"required,oneof=http https"`
	BehindProxy        bool   `json:"behind_proxy"`
	MaintenanceMode    bool   `json:"maintenance_mode"`
	Memory             int    `json:"memory" validate:"gte=0"`
	MemoryOverallocate int    `json:"memory_overallocate" validate:"gte=-1"`
	Disk               int    `json:"disk" validate:"gte=0"`
	DiskOverallocate   int    `json:"disk_overallocate" validate:"gte=-1"`
	UploadSize         int    `json:"upload_size" validate:"gte=1,lte=1024"`
	DaemonSFTP         int    `json:"daemon_sftp" validate:"required,gt=0,lte=65535"`
	DaemonListen       int    `json:"daemon_listen" validate:"required,gt=0,lte=65535"`
}

// CreateAllocationRequest adds ports on IP to a node. Ports are single
// ports ("25565") or ranges ("25565-25570").
type CreateAllocationRequest struct {
	IP    string   `json:"ip" validate:"required,ip"`
	Ports []string `json:"ports" validate:"required,min=1,dive,required"`
}

func (a *Client) ListNodes(ctx context.Context) (*resource.List[Node], error) {
	return endpoint.List[Node](ctx, a.caller, endpoint.Call{
		Op:     "list nodes",
		Method: http.MethodGet,
		Route:  base + "/nodes",
	})
}

func (a *Client) NodeDetails(ctx context.Context, nodeID int) (*Node, error) {
	return endpoint.Attributes[Node](ctx, a.caller, endpoint.Call{
		Op:     "node details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/nodes", nodeID),
	})
}

// NodeConfiguration returns the configuration the node's daemon runs with.
func (a *Client) NodeConfiguration(ctx context.Context, nodeID int) (NodeConfiguration, error) {
	cfg, err := endpoint.Decode[NodeConfiguration](ctx, a.caller, endpoint.Call{
		Op:     "node configuration",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/nodes", nodeID, "configuration"),
	})
	if err != nil {
		return nil, err
	}

	return *cfg, nil
}

func (a *Client) CreateNode(ctx context.Context, req CreateNodeRequest) (*Node, error) {
	return endpoint.Attributes[Node](ctx, a.caller, endpoint.Call{
		Op:      "create node",
		Method:  http.MethodPost,
		Route:   base + "/nodes",
		Payload: req,
	})
}

func (a *Client) UpdateNode(ctx context.Context, nodeID int, req UpdateNodeRequest) (*Node, error) {
	return endpoint.Attributes[Node](ctx, a.caller, endpoint.Call{
		Op:      "update node",
		Method:  http.MethodPatch,
		Route:   endpoint.Route(base+"/nodes", nodeID),
		Payload: req,
	})
}

func (a *Client) DeleteNode(ctx context.Context, nodeID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "delete node",
		Method: http.MethodDelete,
		Route:  endpoint.Route(base+"/nodes", nodeID),
	})
}

func (a *Client) ListAllocations(ctx context.Context, nodeID int) (*resource.List[Allocation], error) {
	return endpoint.List[Allocation](ctx, a.caller, endpoint.Call{
		Op:     "list allocations",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/nodes", nodeID, "allocations"),
	})
}

func (a *Client) CreateAllocation(ctx context.Context, nodeID int, req CreateAllocationRequest) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:      "create allocation",
		Method:  http.MethodPost,
		Route:   endpoint.Route(base+"/nodes", nodeID, "allocations"),
		Payload: req,
	})
}

func (a *Client) DeleteAllocation(ctx context.Context, nodeID, allocationID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "delete allocation",
		Method: http.MethodDelete,
		Route:  endpoint.Route(base+"/nodes", nodeID, "allocations", allocationID),
	})
}
