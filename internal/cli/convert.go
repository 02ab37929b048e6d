package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/pipeline"
	"github.com/matzehuels/growthchart/pkg/source"
)

// convertCommand creates the convert command, which rewrites a data file
// in another input format.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [data file]",
		Short: "Convert a data file between JSON and XLSX",
		Long: `Convert a data file between JSON and XLSX.

Reads a JSON, CSV or XLSX data file and writes it in the format implied by
the output extension: .json or .xlsx. Use - to write JSON to stdout.

After converting, the column totals of the normalized table are listed so
the data can be checked before laying it out.`,
		Example: `  growthchart convert regions.csv -o regions.xlsx
  growthchart convert regions.xlsx -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			input := args[0]
			raw, err := pipeline.Load(cmd.Context(), pipeline.Options{DataPath: input, Logger: c.Logger})
			if err != nil {
				return fmt.Errorf("load data %s: %w", input, err)
			}

			if output == "-" {
				return source.WriteJSON(raw, cmd.OutOrStdout())
			}
			if err := convertTo(raw, output); err != nil {
				return err
			}
			printSuccess("Converted %s", input)
			printFile(output)

			tbl, err := table.Build(raw, table.Options{CleanAxis: cfg.Layout.Chart.CleanAxis})
			if err != nil {
				printWarning("%v", err)
				return nil
			}
			printColumnTotals(tbl)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .xlsx), - for JSON on stdout")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// convertTo writes raw to path in the format implied by its extension.
func convertTo(raw table.Raw, path string) error {
	format, err := source.DetectFormat(path)
	if err != nil {
		return err
	}
	var write func(table.Raw, io.Writer) error
	switch format {
	case source.FormatJSON:
		write = source.WriteJSON
	case source.FormatXLSX:
		write = source.WriteXLSX
	default:
		return fmt.Errorf("cannot write %s files (want .json or .xlsx)", format)
	}

	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	if err := write(raw, out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// printColumnTotals lists each column of t with its total.
func printColumnTotals(t *table.Table) {
	totals := t.Totals()
	for i, label := range t.Labels() {
		printDetail("%-12s %s", label, formatValue(totals[i]))
	}
}
