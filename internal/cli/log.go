// Package cli implements the growthchart command-line interface.
//
// Commands compute chart layouts from JSON, CSV or XLSX data, render them to
// SVG, PNG, PDF or JSON, serve the same pipeline over HTTP and manage the
// configuration file and the local cache. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
//   - layout: Compute the layout of a data file and write it as JSON
//   - render: Compute and render a data file in one step
//   - visualize: Render a previously computed layout
//   - serve: Run the HTTP API
//   - preview: Browse a layout interactively in the terminal
//   - convert: Rewrite a data file as JSON or XLSX
//   - config: Write, show or validate the configuration file
//   - cache: Clear or locate the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The HTTP
// server passes a request-scoped logger through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 artifacts (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
