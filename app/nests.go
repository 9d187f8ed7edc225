package app

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

func (a *Client) ListNests(ctx context.Context) (*resource.List[Nest], error) {
	return endpoint.List[Nest](ctx, a.caller, endpoint.Call{
		Op:     "list nests",
		Method: http.MethodGet,
		Route:  base + "/nests",
	})
}

func (a *Client) NestDetails(ctx context.Context, nestID int) (*Nest, error) {
	return endpoint.Attributes[Nest](ctx, a.caller, endpoint.Call{
		Op:     "nest details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/nests", nestID),
	})
}

func (a *Client) ListEggs(ctx context.Context, nestID int) (*resource.List[Egg], error) {
	return endpoint.List[Egg](ctx, a.caller, endpoint.Call{
		Op:     "list eggs",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/nests", nestID, "eggs"),
	})
}

func (a *Client) EggDetails(ctx context.Context, nestID, eggID int) (*Egg, error) {
	return endpoint.Attributes[Egg](ctx, a.caller, endpoint.Call{
		Op:     "egg details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/nests", nestID, "eggs", eggID),
	})
}
