package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		title      string
		scale      float64
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a chart from a computed layout",
		Long: `Render a chart from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, PDF or JSON. The layout contains all positioning
information, so this step only draws; colors and font sizes come from the
[render] section of the config.

Use 'render' as a shortcut to go directly from data to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.Options{Config: cfg, Formats: formats, Title: title, Scale: scale, Logger: c.Logger}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated; default from config)")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := layout.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, opts.Config, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	formats := opts.Formats
	if len(formats) == 0 {
		formats = configFormats(opts.Config)
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   renderedFormats(formats, artifacts),
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printLayoutReport(l)
	printSuccess("Visualization complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(l.Columns), len(l.Series), len(l.Warnings), cacheHit)
	return l.Err()
}

// configFormats returns the configured default formats.
func configFormats(cfg config.File) []string {
	if len(cfg.Render.Formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return cfg.Render.Formats
}
