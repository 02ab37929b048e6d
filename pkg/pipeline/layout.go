package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/measure"
	"github.com/matzehuels/growthchart/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs the layout engine on raw with the options' layout
// configuration. It never returns nil; failures are reported in
// Layout.Error.
func GenerateLayout(ctx context.Context, raw table.Raw, m measure.Measurer, opts Options) *layout.Layout {
	chartType := opts.Config.Layout.Chart.Type

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, chartType, len(raw.Categories))
	l := layout.Compute(raw, opts.Config.Layout, m)
	observability.Pipeline().OnLayoutComplete(ctx, chartType, time.Since(start), l.Err())

	logLayout(opts, l)
	return l
}

// GenerateTableLayout is [GenerateLayout] for a table that was already
// built from raw data.
func GenerateTableLayout(ctx context.Context, t *table.Table, m measure.Measurer, opts Options) *layout.Layout {
	chartType := opts.Config.Layout.Chart.Type

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, chartType, t.Len())
	l := layout.ComputeTable(t, opts.Config.Layout, m)
	observability.Pipeline().OnLayoutComplete(ctx, chartType, time.Since(start), l.Err())

	logLayout(opts, l)
	return l
}

// logLayout reports warnings and a failed pass at debug level; callers
// decide how to surface them to users.
func logLayout(opts Options, l *layout.Layout) {
	for _, w := range l.Warnings {
		opts.Logger.Debug("layout warning", "stage", w.Stage, "code", w.Code, "msg", w.Message)
	}
	if l.Error != nil {
		opts.Logger.Debug("layout failed", "stage", l.Error.Stage, "code", l.Error.Code, "msg", l.Error.Message)
	}
}
