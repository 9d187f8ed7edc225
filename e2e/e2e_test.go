//go:build integration

// Package e2e_test runs read-only calls against a real panel. It reads
// PTEROM_HOST, PTEROM_APP_TOKEN and PTEROM_CLIENT_TOKEN from the
// environment or a .env file next to this package:
//
//	go test -tags integration ./e2e/...
package e2e_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/adamwoolhether/pterom"
	"github.com/adamwoolhether/pterom/client"
	"github.com/adamwoolhether/pterom/client/apierr"
)

func newPanel(t *testing.T) *pterom.Pterom {
	t.Helper()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("loading .env: %v", err)
	}

	host := os.Getenv("PTEROM_HOST")
	if host == "" {
		t.Skip("PTEROM_HOST not set")
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := pterom.New(pterom.Config{
		Host:        host,
		AppToken:    os.Getenv("PTEROM_APP_TOKEN"),
		ClientToken: os.Getenv("PTEROM_CLIENT_TOKEN"),
	},
		client.WithTimeout(30*time.Second),
		client.WithLogger(log),
	)
	if err != nil {
		t.Fatalf("building panel clients: %v", err)
	}

	return p
}

func TestApp_ReadOnly(t *testing.T) {
	p := newPanel(t)
	if p.App == nil {
		t.Skip("PTEROM_APP_TOKEN not set")
	}

	users, err := p.App.ListUsers(t.Context())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	t.Logf("%d users", len(users.Data))

	if _, err := p.App.ListNodes(t.Context()); err != nil {
		t.Fatalf("list nodes: %v", err)
	}
	if _, err := p.App.ListLocations(t.Context()); err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if _, err := p.App.ListNests(t.Context()); err != nil {
		t.Fatalf("list nests: %v", err)
	}

	_, err = p.App.UserDetails(t.Context(), 1<<30)
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Errorf("exp ErrNotFound for an unknown user, got: %v", err)
	}
}

func TestClient_ReadOnly(t *testing.T) {
	p := newPanel(t)
	if p.Client == nil {
		t.Skip("PTEROM_CLIENT_TOKEN not set")
	}

	if _, err := p.Client.AccountDetails(t.Context()); err != nil {
		t.Fatalf("account details: %v", err)
	}

	servers, err := p.Client.ListServers(t.Context())
	if err != nil {
		t.Fatalf("list servers: %v", err)
	}

	items := servers.Items()
	if len(items) == 0 {
		t.Skip("account has no servers")
	}
	id := items[0].Identifier

	if _, err := p.Client.ResourceUsage(t.Context(), id); err != nil {
		t.Fatalf("resource usage: %v", err)
	}

	files, err := p.Client.ListFiles(t.Context(), id, "/")
	if err != nil {
		t.Fatalf("list files: %v", err)
	}

	for _, f := range files.Items() {
		if !f.IsFile || f.Size > 1<<20 {
			continue
		}

		signed, err := p.Client.DownloadFile(t.Context(), id, "/", f.Name)
		if err != nil {
			t.Fatalf("download url: %v", err)
		}

		dest := filepath.Join(t.TempDir(), f.Name)
		if err := p.Client.Dispatcher().Download(t.Context(), signed, dest, client.WithProgress()); err != nil {
			t.Fatalf("download: %v", err)
		}

		break
	}
}
