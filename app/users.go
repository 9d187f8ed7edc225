package app

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

// CreateUserRequest is the payload of [Client.CreateUser].
type CreateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Username   string  `json:"username" validate:"required,max=191"`
	FirstName  string  `json:"first_name" validate:"required,max=191"`
	LastName   string  `json:"last_name" validate:"required,max=191"`
	ExternalID *string `json:"external_id,omitempty" validate:"omitempty,max=191"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	RootAdmin  *bool   `json:"root_admin,omitempty"`
	Language   *string `json:"language,omitempty" validate:"omitempty,max=5"`
}

// UpdateUserRequest is the payload of [Client.UpdateUser]. The panel
// replaces the user record, so every required field must be resent.
type UpdateUserRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Username   string  `json:"username" validate:"required,max=191"`
	FirstName  string  `json:"first_name" validate:"required,max=191"`
	LastName   string  `json:"last_name" validate:"required,max=191"`
	Language   string  `json:"language,omitempty" validate:"omitempty,max=5"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	ExternalID *string `json:"external_id,omitempty" validate:"omitempty,max=191"`
	RootAdmin  *bool   `json:"root_admin,omitempty"`
}

func (a *Client) ListUsers(ctx context.Context) (*resource.List[User], error) {
	return endpoint.List[User](ctx, a.caller, endpoint.Call{
		Op:     "list users",
		Method: http.MethodGet,
		Route:  base + "/users",
	})
}

func (a *Client) UserDetails(ctx context.Context, userID int) (*User, error) {
	return endpoint.Attributes[User](ctx, a.caller, endpoint.Call{
		Op:     "user details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/users", userID),
	})
}

// UserDetailsByExternalID looks a user up by the ID an external
// system assigned it.
func (a *Client) UserDetailsByExternalID(ctx context.Context, externalID string) (*User, error) {
	return endpoint.Attributes[User](ctx, a.caller, endpoint.Call{
		Op:     "user details",
		Method: http.MethodGet,
		Route:  endpoint.Route(base+"/users/external", externalID),
	})
}

func (a *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return endpoint.Attributes[User](ctx, a.caller, endpoint.Call{
		Op:      "create user",
		Method:  http.MethodPost,
		Route:   base + "/users",
		Payload: req,
	})
}

func (a *Client) UpdateUser(ctx context.Context, userID int, req UpdateUserRequest) (*User, error) {
	return endpoint.Attributes[User](ctx, a.caller, endpoint.Call{
		Op:      "update user",
		Method:  http.MethodPatch,
		Route:   endpoint.Route(base+"/users", userID),
		Payload: req,
	})
}

func (a *Client) DeleteUser(ctx context.Context, userID int) error {
	return a.caller.Exec(ctx, endpoint.Call{
		Op:     "delete user",
		Method: http.MethodDelete,
		Route:  endpoint.Route(base+"/users", userID),
	})
}
