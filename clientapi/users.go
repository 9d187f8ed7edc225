package clientapi

import (
	"context"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

type createSubuserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

type updateSubuserRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

func usersRoute(serverID string, segments ...any) string {
	return endpoint.Route(servers, append([]any{serverID, "users"}, segments...)...)
}

// ListUsers lists the subusers of a server.
func (c *Client) ListUsers(ctx context.Context, serverID string) (*resource.List[User], error) {
	return endpoint.List[User](ctx, c.caller, endpoint.Call{
		Op:     "list users",
		Method: http.MethodGet,
		Route:  usersRoute(serverID),
	})
}

// CreateUser invites email as a subuser holding permissions, such as
// "control.console". See [Client.ShowPermissions] for the full set.
func (c *Client) CreateUser(ctx context.Context, serverID, email string, permissions []string) (*User, error) {
	return endpoint.Attributes[User](ctx, c.caller, endpoint.Call{
		Op:      "create user",
		Method:  http.MethodPost,
		Route:   usersRoute(serverID),
		Payload: createSubuserRequest{Email: email, Permissions: permissions},
	})
}

func (c *Client) UserDetails(ctx context.Context, serverID, userUUID string) (*User, error) {
	return endpoint.Attributes[User](ctx, c.caller, endpoint.Call{
		Op:     "user details",
		Method: http.MethodGet,
		Route:  usersRoute(serverID, userUUID),
	})
}

// UpdateUser replaces the permissions of a subuser.
func (c *Client) UpdateUser(ctx context.Context, serverID, userUUID string, permissions []string) (*User, error) {
	return endpoint.Attributes[User](ctx, c.caller, endpoint.Call{
		Op:      "update user",
		Method:  http.MethodPost,
		Route:   usersRoute(serverID, userUUID),
		Payload: updateSubuserRequest{Permissions: permissions},
	})
}

func (c *Client) DeleteUser(ctx context.Context, serverID, userUUID string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "delete user",
		Method: http.MethodDelete,
		Route:  usersRoute(serverID, userUUID),
	})
}
