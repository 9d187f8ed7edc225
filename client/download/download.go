package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Handle writes body, the payload a panel signed URL streams for a
// server file or backup archive, to destPath.
//
// The payload is staged in a hidden ".pterom-dl-*" file next to destPath
// and only renamed into place once the byte count matches contentLength
// (-1 when the node sends no Content-Length) and the checksum, if any,
// verifies. A failed or cancelled download leaves destPath untouched.
func Handle(ctx context.Context, body io.Reader, contentLength int64, destPath string, logger *slog.Logger, optFns ...Option) error {
	if destPath == "" {
		return errors.New("destPath must not be empty")
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return fmt.Errorf("applying option: %w", err)
		}
	}

	if opts.skipExisting {
		if _, err := os.Stat(destPath); err == nil {
			logger.Info("download target exists, skipping", "dest", destPath)
			return nil
		}
	}

	stage, err := os.CreateTemp(filepath.Dir(destPath), ".pterom-dl-*")
	if err != nil {
		return fmt.Errorf("staging %s: %w", destPath, err)
	}

	committed := false
	defer func() {
		if err := stage.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Error("closing staged download", "file", stage.Name(), "error", err)
		}
		if committed {
			return
		}
		if err := os.Remove(stage.Name()); err != nil {
			logger.Error("removing staged download", "file", stage.Name(), "error", err)
		}
	}()

	n, err := io.Copy(sink(stage, contentLength, logger, opts), &contextReader{ctx: ctx, r: body})
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", ErrDownloadCancelled, destPath, err)
	case err != nil:
		return fmt.Errorf("streaming to %s: %w", destPath, err)
	}

	if contentLength >= 0 && n != contentLength {
		return &Error{
			Err:    ErrContentLengthMismatch,
			Detail: fmt.Sprintf("%s: node announced %d bytes, sent %d", destPath, contentLength, n),
		}
	}

	if err := opts.checksum.Verify(); err != nil {
		return err
	}

	if err := commit(stage, destPath); err != nil {
		return err
	}
	committed = true

	return nil
}

// sink layers the checksum and progress writers over the staging file.
func sink(stage *os.File, total int64, logger *slog.Logger, opts options) io.Writer {
	var w io.Writer = stage

	if opts.checksum != nil {
		w = io.MultiWriter(w, opts.checksum)
	}

	if opts.progress {
		w = &progressWriter{w: w, logger: logger, total: total, startTime: time.Now()}
	}

	return w
}

// commit flushes the staging file and moves it over destPath.
func commit(stage *os.File, destPath string) error {
	if err := stage.Sync(); err != nil {
		return fmt.Errorf("flushing %s: %w", stage.Name(), err)
	}
	if err := stage.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", stage.Name(), err)
	}
	if err := os.Rename(stage.Name(), destPath); err != nil {
		return fmt.Errorf("moving download into %s: %w", destPath, err)
	}

	return nil
}
