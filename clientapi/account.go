package clientapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/adamwoolhether/pterom/internal/endpoint"
	"github.com/adamwoolhether/pterom/resource"
)

type enableTwoFactorRequest struct {
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password,omitempty"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required"`
}

type updateEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the payload of [Client.UpdatePassword].
type UpdatePasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// CreateAPIKeyRequest is the payload of [Client.CreateAPIKey].
type CreateAPIKeyRequest struct {
	Description string   `json:"description" validate:"required,max=500"`
	AllowedIPs  []string `json:"allowed_ips,omitempty" validate:"omitempty,dive,ip|cidr"`
}

// ListServers lists every server the account can access.
func (c *Client) ListServers(ctx context.Context) (*resource.List[Server], error) {
	return endpoint.List[Server](ctx, c.caller, endpoint.Call{
		Op:     "list servers",
		Method: http.MethodGet,
		Route:  base,
	})
}

// ShowPermissions lists all permissions a subuser can be granted.
func (c *Client) ShowPermissions(ctx context.Context) (*SystemPermissions, error) {
	return endpoint.Attributes[SystemPermissions](ctx, c.caller, endpoint.Call{
		Op:     "show permissions",
		Method: http.MethodGet,
		Route:  base + "/permissions",
	})
}

func (c *Client) AccountDetails(ctx context.Context) (*Account, error) {
	return endpoint.Attributes[Account](ctx, c.caller, endpoint.Call{
		Op:     "account details",
		Method: http.MethodGet,
		Route:  base + "/account",
	})
}

// GenerateTwoFactorQR returns the otpauth image data used to enrol
// an authenticator app.
func (c *Client) GenerateTwoFactorQR(ctx context.Context) (string, error) {
	out, err := endpoint.Decode[struct {
		Data struct {
			ImageURLData string `json:"image_url_data"`
		} `json:"data"`
	}](ctx, c.caller, endpoint.Call{
		Op:     "generate two-factor qr",
		Method: http.MethodGet,
		Route:  base + "/account/two-factor",
	})
	if err != nil {
		return "", err
	}

	return out.Data.ImageURLData, nil
}

// EnableTwoFactor confirms enrolment with a TOTP code and returns the
// recovery tokens. Newer panels also require the account password;
// pass "" for panels that do not.
func (c *Client) EnableTwoFactor(ctx context.Context, code, password string) (*RecoveryTokens, error) {
	return endpoint.Attributes[RecoveryTokens](ctx, c.caller, endpoint.Call{
		Op:      "enable two-factor",
		Method:  http.MethodPost,
		Route:   base + "/account/two-factor",
		Payload: enableTwoFactorRequest{Code: code, Password: password},
	})
}

func (c *Client) DisableTwoFactor(ctx context.Context, password string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "disable two-factor",
		Method:  http.MethodDelete,
		Route:   base + "/account/two-factor",
		Payload: passwordRequest{Password: password},
	})
}

func (c *Client) UpdateEmail(ctx context.Context, email, password string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "update email",
		Method:  http.MethodPut,
		Route:   base + "/account/email",
		Payload: updateEmailRequest{Email: email, Password: password},
	})
}

func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:      "update password",
		Method:  http.MethodPut,
		Route:   base + "/account/password",
		Payload: req,
	})
}

func (c *Client) ListAPIKeys(ctx context.Context) (*resource.List[APIKey], error) {
	return endpoint.List[APIKey](ctx, c.caller, endpoint.Call{
		Op:     "list api keys",
		Method: http.MethodGet,
		Route:  base + "/account/api-keys",
	})
}

func (c *Client) CreateAPIKey(ctx context.Context, req CreateAPIKeyRequest) (*NewAPIKey, error) {
	call := endpoint.Call{
		Op:      "create api key",
		Method:  http.MethodPost,
		Route:   base + "/account/api-keys",
		Payload: req,
	}

	obj, err := endpoint.Decode[resource.Object[APIKey]](ctx, c.caller, call)
	if err != nil {
		return nil, err
	}

	key := NewAPIKey{APIKey: obj.Attributes}
	if len(obj.Meta) > 0 {
		var meta struct {
			SecretToken string `json:"secret_token"`
		}
		if err := json.Unmarshal(obj.Meta, &meta); err != nil {
			return nil, fmt.Errorf("pterom client: %s: decoding meta: %w", call.Op, err)
		}
		key.SecretToken = meta.SecretToken
	}

	return &key, nil
}

func (c *Client) DeleteAPIKey(ctx context.Context, identifier string) error {
	return c.caller.Exec(ctx, endpoint.Call{
		Op:     "delete api key",
		Method: http.MethodDelete,
		Route:  endpoint.Route(base+"/account/api-keys", identifier),
	})
}
