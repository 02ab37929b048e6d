package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/observability"
	"github.com/matzehuels/growthchart/pkg/source"
)

// Load returns the host data named by opts: the inline Data when set,
// otherwise the file at DataPath.
func Load(ctx context.Context, opts Options) (table.Raw, error) {
	if opts.Data != nil {
		return *opts.Data, nil
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.DataPath)
	raw, err := source.Load(opts.DataPath)
	observability.Pipeline().OnLoadComplete(ctx, opts.DataPath, len(raw.Categories), time.Since(start), err)
	return raw, err
}
