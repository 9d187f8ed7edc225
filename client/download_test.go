package client_test

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/adamwoolhether/pterom/client"
)

// signedServer serves body at any path and records the Authorization
// header of the last request.
func signedServer(t *testing.T, body []byte) (*httptest.Server, *atomic.Value) {
	t.Helper()

	var auth atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}))
	t.Cleanup(ts.Close)

	return ts, &auth
}

func TestClient_Download(t *testing.T) {
	expBody := []byte("hello download world")
	ts, auth := signedServer(t, expBody)

	c := mustBuild(t, "https://panel.example.com")
	destPath := filepath.Join(t.TempDir(), "world.tar.gz")

	if err := c.Download(t.Context(), ts.URL+"/download/backup?token=abc", destPath); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if !bytes.Equal(got, expBody) {
		t.Errorf("file contents mismatch; got %q, want %q", got, expBody)
	}

	if got := auth.Load(); got != "" {
		t.Errorf("signed download must not carry the panel token, got %q", got)
	}
}

func TestClient_Download_Checksum(t *testing.T) {
	expBody := []byte("backup archive bytes")
	sum := sha1.Sum(expBody)
	digest := hex.EncodeToString(sum[:])

	testCases := map[string]struct {
		checksum string
		expErr   error
	}{
		"bare":     {checksum: digest},
		"prefixed": {checksum: "sha1:" + digest},
		"mismatch": {checksum: "sha1:0000", expErr: client.ErrChecksumMismatch},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ts, _ := signedServer(t, expBody)

			c := mustBuild(t, "https://panel.example.com")
			destPath := filepath.Join(t.TempDir(), "backup.tar.gz")

			err := c.Download(t.Context(), ts.URL, destPath, client.WithChecksum(sha1.New(), tc.checksum))
			if !errors.Is(err, tc.expErr) {
				t.Fatalf("exp err %v, got: %v", tc.expErr, err)
			}

			_, statErr := os.Stat(destPath)
			if tc.expErr != nil && !os.IsNotExist(statErr) {
				t.Error("expected no file after a failed download")
			}
			if tc.expErr == nil && statErr != nil {
				t.Errorf("expected file, got: %v", statErr)
			}
		})
	}
}

func TestClient_Download_Errors(t *testing.T) {
	c := mustBuild(t, "https://panel.example.com")
	dir := t.TempDir()

	testCases := map[string]struct {
		url  string
		dest string
	}{
		"emptyDest":   {url: "https://node.example.com/f", dest: ""},
		"relativeURL": {url: "/download/file", dest: filepath.Join(dir, "f")},
		"badURL":      {url: "://bad", dest: filepath.Join(dir, "f")},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if err := c.Download(t.Context(), tc.url, tc.dest); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestClient_Download_Status(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusForbidden)
	}))
	defer ts.Close()

	c := mustBuild(t, "https://panel.example.com")

	err := c.Download(t.Context(), ts.URL, filepath.Join(t.TempDir(), "f"))

	var statusErr *client.UnexpectedStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 status error, got: %v", err)
	}
}

func TestClient_Download_SkipExisting(t *testing.T) {
	ts, _ := signedServer(t, []byte("new"))

	c := mustBuild(t, "https://panel.example.com")
	destPath := filepath.Join(t.TempDir(), "existing")

	if err := os.WriteFile(destPath, []byte("old"), 0o600); err != nil {
		t.Fatalf("writing existing file: %v", err)
	}

	if err := c.Download(t.Context(), ts.URL, destPath, client.WithSkipExisting()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	got, _ := os.ReadFile(destPath)
	if string(got) != "old" {
		t.Errorf("existing file was overwritten: %q", got)
	}
}
