package client

import (
	"context"
	"errors"
	"fmt"
	"hash"
	"net/http"
	"net/url"

	"github.com/adamwoolhether/pterom/client/download"
)

// DownloadOption is a functional option for [Client.Download].
type DownloadOption = download.Option

// DownloadError wraps a sentinel error with additional detail.
type DownloadError = download.Error

var (
	// ErrContentLengthMismatch indicates the byte count did not match Content-Length.
	ErrContentLengthMismatch = download.ErrContentLengthMismatch

	// ErrChecksumMismatch indicates the file checksum did not match the expected value.
	ErrChecksumMismatch = download.ErrChecksumMismatch

	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = download.ErrDownloadCancelled
)

// WithChecksum enables checksum validation of the downloaded file.
func WithChecksum(h hash.Hash, expected string) DownloadOption {
	return download.WithChecksum(h, expected)
}

// WithProgress enables periodic download progress logging.
func WithProgress() DownloadOption { return download.WithProgress() }

// WithSkipExisting skips the download when destPath already exists.
func WithSkipExisting() DownloadOption { return download.WithSkipExisting() }

// Download fetches rawURL, an absolute signed URL handed out by the panel
// for a file or backup, and streams it to destPath. Signed URLs carry
// their own credentials, so the panel token is not sent.
func (c *Client) Download(ctx context.Context, rawURL, destPath string, opts ...DownloadOption) error {
	if destPath == "" {
		return errors.New("destPath must not be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing download url: %w", err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("download url %q must be absolute", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("instantiating request: %w", err)
	}

	dlFunc := func(resp *http.Response) error {
		if err := download.Handle(req.Context(), resp.Body, resp.ContentLength, destPath, c.logger, opts...); err != nil {
			return fmt.Errorf("download: %w", err)
		}

		return nil
	}

	return c.exec(req, u.Path, dlFunc)
}
