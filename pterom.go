// Package pterom is a client for the Pterodactyl game server panel.
//
// [New] builds the two API surfaces from one [Config]: the application
// API, administered with an application token, and the client API,
// used with a per-account client token. Either token may be omitted,
// leaving the matching field nil.
package pterom

import (
	"fmt"

	"github.com/adamwoolhether/pterom/app"
	"github.com/adamwoolhether/pterom/client"
	"github.com/adamwoolhether/pterom/clientapi"
	"github.com/adamwoolhether/pterom/validate"
)

// Config holds the panel host and API tokens.
type Config struct {
	Host        string `json:"host" validate:"required,url"`
	AppToken    string `json:"app_token" validate:"required_without=ClientToken"`
	ClientToken string `json:"client_token" validate:"required_without=AppToken"`
}

// Pterom bundles the application and client API clients.
type Pterom struct {
	App    *app.Client
	Client *clientapi.Client
}

// New validates cfg and instantiates a client for every token it
// holds. The options are applied to both.
func New(cfg Config, opts ...client.Option) (*Pterom, error) {
	if err := validate.Check(cfg); err != nil {
		return nil, fmt.Errorf("pterom: invalid config: %w", err)
	}

	var p Pterom

	if cfg.AppToken != "" {
		a, err := app.New(cfg.Host, cfg.AppToken, opts...)
		if err != nil {
			return nil, fmt.Errorf("pterom: building app client: %w", err)
		}
		p.App = a
	}

	if cfg.ClientToken != "" {
		c, err := clientapi.New(cfg.Host, cfg.ClientToken, opts...)
		if err != nil {
			return nil, fmt.Errorf("pterom: building client api client: %w", err)
		}
		p.Client = c
	}

	return &p, nil
}
