package download

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/adamwoolhether/pterom/bytesize"
)

// progressWriter is an io.Writer, logging download progress at
// most once per second if enabled.
type progressWriter struct {
	w           io.Writer
	logger      *slog.Logger
	transferred int64
	total       int64
	startTime   time.Time
	lastLog     time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.transferred += int64(n)

	if time.Since(pw.lastLog) >= time.Second {
		pw.lastLog = time.Now()
		pw.log("downloading")
	}

	if pw.total >= 0 && pw.transferred == pw.total {
		pw.log("download complete")
	}

	return n, err
}

func (pw *progressWriter) log(msg string) {
	elapsed := time.Since(pw.startTime)

	attrs := []any{
		"elapsed", elapsed.Round(time.Millisecond),
		"transferred", bytesize.Format(pw.transferred),
	}

	// Content-Length is -1 when the node streams without one.
	if pw.total > 0 {
		attrs = append(attrs,
			"progress", fmt.Sprintf("%.1f%%", float64(pw.transferred)/float64(pw.total)*100),
			"total", bytesize.Format(pw.total),
		)
	}

	if secs := elapsed.Seconds(); secs > 0 {
		attrs = append(attrs, "rate", bytesize.Format(int64(float64(pw.transferred)/secs))+"/s")
	}

	pw.logger.Info(msg, attrs...)
}
