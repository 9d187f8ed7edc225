// Package download streams a response body to disk with optional
// checksum validation and progress reporting. The panel hands out
// signed URLs for file and backup downloads; this package writes
// what those URLs return.
//
// [Handle] writes the body to a temporary file alongside the
// destination path, then renames it on success:
//
//	err := download.Handle(ctx, resp.Body, resp.ContentLength, destPath, logger,
//		download.WithChecksum(sha256.New(), expectedHex),
//	)
//
// Most callers should use [github.com/adamwoolhether/pterom/client.Client.Download],
// which invokes Handle internally.
package download
