package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file (single format) or base path
	formats string  // comma-separated formats; empty uses the config
	title   string  // SVG document title
	scale   float64 // PNG pixel density
	noCache bool
	refresh bool
}

// renderCommand creates the render command: data file to artifacts in one
// step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts  renderOpts
		flags chartFlags
	)

	cmd := &cobra.Command{
		Use:   "render [data file]",
		Short: "Compute and render a chart in one step",
		Long: `Compute and render a chart in one step.

Reads a JSON, CSV or XLSX data file and writes the chart in every requested
format. Formats are rendered concurrently. PDF output requires rsvg-convert
(librsvg).

When the layout fails (for example because an axis override is below the
data), the artifacts show the error message and the command exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)
			return c.runRender(cmd.Context(), args[0], cfg, formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated; default from config)")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	flags.register(cmd)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.File, formats []string, opts renderOpts) error {
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		DataPath: input,
		Config:   cfg,
		Formats:  formats,
		Scale:    opts.scale,
		Title:    opts.title,
		Refresh:  opts.refresh,
		Logger:   c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if len(formats) == 0 {
		formats = configFormats(cfg)
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   renderedFormats(formats, result.Artifacts),
		input:     input,
		output:    opts.output,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(paths)))

	printLayoutReport(result.Layout)
	if result.Err() != nil {
		return result.Err()
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Columns, result.Stats.Series, result.Stats.Warnings, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// renderedFormats returns the requested formats present in artifacts, in
// request order, or every artifact when none were requested.
func renderedFormats(requested []string, artifacts map[string][]byte) []string {
	var out []string
	for _, f := range requested {
		if _, ok := artifacts[f]; ok {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
			if _, ok := artifacts[f]; ok {
				out = append(out, f)
			}
		}
	}
	return out
}
