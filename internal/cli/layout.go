package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/growthchart/pkg/chart/layout"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// chartFlags are the config overrides shared by layout, render and preview.
type chartFlags struct {
	width     float64
	height    float64
	chartType string
	legend    string
	measurer  string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "frame width (overrides config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "frame height (overrides config)")
	cmd.Flags().StringVarP(&f.chartType, "type", "t", "", "chart type: stacked, clustered (overrides config)")
	cmd.Flags().StringVar(&f.legend, "legend", "", "legend position: top, bottom, left, none (overrides config)")
	cmd.Flags().StringVar(&f.measurer, "measurer", "", "text measurer: opentype, heuristic (overrides config)")
}

// apply copies the flags the user set onto cfg.
func (f *chartFlags) apply(cmd *cobra.Command, cfg *config.File) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Layout.Chart.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Layout.Chart.Height = f.height
	}
	if flags.Changed("type") {
		cfg.Layout.Chart.Type = f.chartType
	}
	if flags.Changed("legend") {
		if f.legend == "none" {
			cfg.Layout.Legend.Enabled = false
		} else {
			cfg.Layout.Legend.Enabled = true
			cfg.Layout.Legend.Position = f.legend
		}
	}
	if flags.Changed("measurer") {
		cfg.Render.Measurer = f.measurer
	}
}

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [data file]",
		Short: "Compute the chart layout of a data file",
		Long: `Compute the chart layout of a data file.

The layout command reads a JSON, CSV or XLSX data file, resolves scales,
segments, labels, legend, growth indicators and threshold lines, and writes
the result as a layout.json file. The layout can be rendered later with
'visualize' or inspected with 'preview'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)
			return c.runLayout(cmd.Context(), args[0], cfg, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	flags.register(cmd)

	return cmd
}

// runLayout loads the data, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, cfg config.File, output string, noCache, refresh bool) error {
	opts := pipeline.Options{DataPath: input, Config: cfg, Refresh: refresh, Logger: c.Logger}
	raw, err := pipeline.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load data %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, raw, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	out, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("create output %s: %w", outputPath, err)
	}
	defer out.Close()
	if err := layout.WriteJSON(l, out); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if outputPath == "-" {
		return l.Err()
	}

	printLayoutReport(l)
	if l.Error != nil {
		return l.Err()
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Columns), len(l.Series), len(l.Warnings), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
