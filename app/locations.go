package app

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

// LocationRequest is the payload for creating or updating a location.
type LocationRequest struct {
	Short string `json:"short" validate:"required,min=1,max=60"`
	Long  string `json:"long,omitempty" validate:"max=191"`
}

func (a *Client) ListLocations(ctx context.Context) (*resource.List[Location], error) {
	return endpoint.List[Location](ctx, a.caller, endpoint.Call{
		Op:     "list locations",
		Method: http.MethodGet,
		Route:  base + "/locations",
	})
}

func (a *Client) LocationDetails(ctx context.Context, locationID int) (*Location, error) {
	return endpoint.Attributes[Location](ctx, a.caller, endpoint.Call{
		Op:     "location details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/locations", locationID),
	})
}

func (a *Client) CreateLocation(ctx context.Context, req LocationRequest) (*Location, error) {
	return endpoint.Attributes[Location](ctx, a.caller, endpoint.Call{
		Op:      "create location",
		Method:  http.MethodPost,
		Route:   base + "/locations",
		Payload: req,
	})
}

func (a *Client) UpdateLocation(ctx context.Context, locationID int, req LocationRequest) (*Location, error) {
	return endpoint.Attributes[Location](ctx, a.caller, endpoint.Call{
		Op:      "update location",
		Method:  http.MethodPatch,
		Route:   endpoint.Route(base+"/locations", locationID),
		Payload: req,
	})
}

func (a *Client) DeleteLocation(ctx context.Context, locationID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "delete location",
		Method: http.MethodDelete,
		Route:  endpoint.Route(base+"/locations", locationID),
	})
}
