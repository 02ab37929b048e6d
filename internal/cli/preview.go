package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/growthchart/pkg/chart"
	"github.com/matzehuels/growthchart/pkg/chart/layout"
	chartdata "github.com/matzehuels/growthchart/pkg/chart/table"
	"github.com/matzehuels/growthchart/pkg/config"
	"github.com/matzehuels/growthchart/pkg/pipeline"
)

// Tab styles
var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorGray)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// previewCommand creates the preview command, an interactive inspector for
// a computed layout.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		noCache bool
		flags   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [data or layout file]",
		Short: "Inspect a chart layout in the terminal",
		Long: `Inspect a chart layout in the terminal.

Accepts a data file (JSON, CSV, XLSX), which is laid out first, or a
previously written .layout.json file. Columns, growth indicators and
warnings are shown as tabs.

For data files the layout is recomputed live: c toggles the capacity
column, a toggles clean axis and s switches between stacked and clustered.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if strings.HasSuffix(input, ".layout.json") {
				l, err := layout.ImportJSON(input)
				if err != nil {
					return err
				}
				return runPreview(cmd.Context(), newPreviewModel(input, l))
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			flags.apply(cmd, &cfg)
			return c.previewData(cmd.Context(), input, cfg, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

func runPreview(ctx context.Context, m PreviewModel) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// previewData lays out a data file and previews it with live toggles. The
// first layout goes through the cache; toggled layouts reuse the built
// table.
func (c *CLI) previewData(ctx context.Context, input string, cfg config.File, noCache bool) error {
	opts := pipeline.Options{DataPath: input, Config: cfg, Logger: c.Logger}
	raw, err := pipeline.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load data %s: %w", input, err)
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, err := runner.Layout(ctx, raw, opts)
	if err != nil {
		return err
	}
	m := newPreviewModel(input, l)

	// Data the engine rejects has nothing to recompute.
	if tbl, err := chartdata.Build(raw, chartdata.Options{}); err == nil {
		m = m.withRelayout(cfg.Layout, func(lc config.LayoutConfig) (*layout.Layout, error) {
			o := opts
			o.Config.Layout = lc
			return runner.LayoutTable(ctx, tbl, o)
		})
	}
	return runPreview(ctx, m)
}

// =============================================================================
// PreviewModel - Tabbed layout inspector
// =============================================================================

type previewTab int

const (
	tabColumns previewTab = iota
	tabIndicators
	tabWarnings
	tabCount
)

var tabNames = [tabCount]string{"Columns", "Indicators", "Warnings"}

// PreviewModel is the bubbletea model of the preview command.
type PreviewModel struct {
	Name   string
	Layout *layout.Layout
	Tab    previewTab

	// Options is the layout configuration edited by the live toggles.
	Options  config.LayoutConfig
	relayout func(config.LayoutConfig) (*layout.Layout, error)
}

func newPreviewModel(name string, l *layout.Layout) PreviewModel {
	return PreviewModel{Name: name, Layout: l}
}

// withRelayout enables the live toggles, starting from cfg.
func (m PreviewModel) withRelayout(cfg config.LayoutConfig, fn func(config.LayoutConfig) (*layout.Layout, error)) PreviewModel {
	m.Options = cfg
	m.relayout = fn
	return m
}

// toggle applies edit to the options and recomputes the layout. The
// previous state is kept when recomputing fails.
func (m PreviewModel) toggle(edit func(*config.LayoutConfig)) PreviewModel {
	if m.relayout == nil {
		return m
	}
	opts := m.Options
	edit(&opts)
	l, err := m.relayout(opts)
	if err != nil {
		return m
	}
	m.Options = opts
	m.Layout = l
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.Tab = (m.Tab + 1) % tabCount
		case "shift+tab", "left", "h":
			m.Tab = (m.Tab + tabCount - 1) % tabCount
		case "1", "2", "3":
			m.Tab = previewTab(msg.String()[0] - '1')
		case "c":
			m = m.toggle(func(o *config.LayoutConfig) { o.Chart.Capacity = !o.Chart.Capacity })
		case "a":
			m = m.toggle(func(o *config.LayoutConfig) { o.Chart.CleanAxis = !o.Chart.CleanAxis })
		case "s":
			m = m.toggle(func(o *config.LayoutConfig) {
				if o.ChartType() == chart.Clustered {
					o.Chart.Type = string(chart.Stacked)
				} else {
					o.Chart.Type = string(chart.Clustered)
				}
			})
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	l := m.Layout
	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s  %.0fx%.0f", l.Type, l.Width, l.Height)))
	b.WriteString("\n")
	if l.Error != nil {
		b.WriteString(styleIconError.Render(fmt.Sprintf("%s %s", iconError, l.Error.Message)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tabs := make([]string, tabCount)
	for i, name := range tabNames {
		if previewTab(i) == m.Tab {
			tabs[i] = tabActiveStyle.Render(name)
		} else {
			tabs[i] = tabInactiveStyle.Render(name)
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n\n")

	switch m.Tab {
	case tabColumns:
		b.WriteString(m.columnsTable())
	case tabIndicators:
		b.WriteString(m.indicatorsTable())
	case tabWarnings:
		b.WriteString(m.warningsTable())
	}

	b.WriteString("\n\n")
	help := "tab/←/→ switch  q quit"
	if m.relayout != nil {
		help = fmt.Sprintf("%s  c capacity (%s)  a clean axis (%s)  s type", help, onOff(m.Options.Chart.Capacity), onOff(m.Options.Chart.CleanAxis))
	}
	b.WriteString(listDimStyle.Render(help))
	return b.String()
}

func (m PreviewModel) columnsTable() string {
	l := m.Layout
	if len(l.Columns) == 0 {
		return listDimStyle.Render("  no columns")
	}

	headers := append([]string{"#", "Label"}, l.Series...)
	headers = append(headers, "Total")

	values := make(map[[2]int]float64, len(l.Segments))
	for _, s := range l.Segments {
		values[[2]int{s.Column, s.SeriesIndex}] = s.Value()
	}

	rows := make([][]string, 0, len(l.Columns))
	for _, col := range l.Columns {
		row := []string{fmt.Sprint(col.Index + 1), col.Label}
		for si := range l.Series {
			row = append(row, formatValue(values[[2]int{col.Index, si}]))
		}
		row = append(row, formatValue(col.Total))
		rows = append(rows, row)
	}

	return newTable(headers, rows, func(row, col int) lipgloss.Style {
		if row >= 0 && row < len(l.Columns) && l.Columns[row].Capacity {
			return lipgloss.NewStyle().Foreground(colorDim)
		}
		if col == len(headers)-1 {
			return lipgloss.NewStyle().Bold(true)
		}
		return lipgloss.NewStyle()
	})
}

func (m PreviewModel) indicatorsTable() string {
	inds := m.Layout.Indicators
	if len(inds) == 0 {
		return listDimStyle.Render("  no growth indicators")
	}

	rows := make([][]string, 0, len(inds))
	for _, ind := range inds {
		rows = append(rows, []string{
			string(ind.Kind),
			ind.From,
			ind.To,
			formatValue(ind.Value1),
			formatValue(ind.Value2),
			ind.Text,
		})
	}

	return newTable([]string{"Kind", "From", "To", "Value 1", "Value 2", "Growth"}, rows, func(row, col int) lipgloss.Style {
		if col == 5 && row >= 0 && row < len(inds) {
			if inds[row].Percent < 0 {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorGreen)
		}
		return lipgloss.NewStyle()
	})
}

func (m PreviewModel) warningsTable() string {
	ws := m.Layout.Warnings
	if len(ws) == 0 {
		return StyleSuccess.Render("  " + iconSuccess + " no warnings")
	}

	rows := make([][]string, 0, len(ws))
	for _, w := range ws {
		rows = append(rows, []string{string(w.Stage), string(w.Code), w.Message})
	}
	return newTable([]string{"Stage", "Code", "Message"}, rows, func(row, col int) lipgloss.Style {
		if col == 2 {
			return lipgloss.NewStyle().Foreground(colorYellow)
		}
		return lipgloss.NewStyle()
	})
}

// =============================================================================
// Helpers
// =============================================================================

func newTable(headers []string, rows [][]string, style func(row, col int) lipgloss.Style) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return style(row, col).Padding(0, 1)
		}).
		Render()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
