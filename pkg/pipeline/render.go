package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/observability"
	"github.com/matzehuels/growthchart/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the layout is only read.
func Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	return renderFormats(ctx, l, opts.Formats, opts)
}

func renderFormats(ctx context.Context, l *layout.Layout, formats []string, opts Options) (map[string][]byte, error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, formats)

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderFormat produces a single artifact.
func renderFormat(ctx context.Context, l *layout.Layout, format string, opts Options) ([]byte, error) {
	style := opts.Style()
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(l, sink.WithPNGStyle(style), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(l)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
