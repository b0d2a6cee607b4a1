package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cometsanalytics/heatmatrix/pkg/colormap"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/ordering"
	"github.com/cometsanalytics/heatmatrix/pkg/pipeline"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
	"github.com/cometsanalytics/heatmatrix/pkg/results"
)

const (
	cellWidth     = 7
	maxLabelWidth = 24
	chromeLines   = 8
)

var (
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewKeyStyle  = lipgloss.NewStyle().Foreground(colorGray)
	previewSortStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// PreviewModel - Interactive heatmap preview
// =============================================================================

// PreviewModel is the bubbletea model of the preview command. Every key
// press that changes an option recomputes the figures of the results
// object.
type PreviewModel struct {
	ctx     context.Context
	res     *results.Results
	opts    pipeline.Options
	cmap    colormap.Colormap
	columns []string
	sortIdx int

	Result *pipeline.Result
	Status string
	Height int
}

// NewPreviewModel creates a preview of res. opts must have passed
// ValidateAndSetDefaults.
func NewPreviewModel(ctx context.Context, res *results.Results, opts pipeline.Options, cmap colormap.Colormap) PreviewModel {
	m := PreviewModel{
		ctx:     ctx,
		res:     res,
		opts:    opts,
		cmap:    cmap,
		columns: ordering.Index(res.Effects, opts.Heatmap.XKey).Sorted,
		sortIdx: -1,
		Height:  30,
	}
	for i, col := range m.columns {
		if col == opts.Heatmap.SortColumn {
			m.sortIdx = i
		}
	}
	m.recompute()
	return m
}

// Options returns the options of the current view.
func (m PreviewModel) Options() pipeline.Options {
	return m.opts
}

func (m *PreviewModel) recompute() {
	m.Result = pipeline.Build(m.ctx, m.res, m.opts)
}

// cycleSort moves the pivot column by step. Index -1 selects the default
// pivot.
func (m *PreviewModel) cycleSort(step int) {
	if len(m.columns) == 0 {
		return
	}
	n := len(m.columns) + 1
	m.sortIdx = (m.sortIdx+1+step+n)%n - 1
	m.opts.Heatmap.SortColumn = ""
	if m.sortIdx >= 0 {
		m.opts.Heatmap.SortColumn = m.columns[m.sortIdx]
	}
	m.recompute()
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.cycleSort(1)
		case "left", "h":
			m.cycleSort(-1)
		case "a":
			m.opts.Heatmap.ShowAnnotations = !m.opts.Heatmap.ShowAnnotations
			m.recompute()
		case "d":
			if !m.res.HasDendrogram() {
				m.Status = "no clustering figure in this results object"
				return m, nil
			}
			m.opts.Heatmap.ShowDendrogram = !m.opts.Heatmap.ShowDendrogram
			m.recompute()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-chromeLines, 5)
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	title := m.opts.Title
	if title == "" {
		title = m.res.Title()
	}
	if title == "" {
		title = "Heatmap"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ sort column  a annotations  d dendrogram  q quit"))
	b.WriteString("\n\n")

	trace, ok := heatmapTrace(m.Result.Selected())
	if !ok {
		b.WriteString(StyleWarning.Render("Nothing to draw: no records pass the significance filter."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.grid(trace))
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.Status))
	}
	return b.String()
}

func (m PreviewModel) grid(t plot.Trace) string {
	xs, ys := labels(t.X), labels(t.Y)
	labelWidth := 0
	for _, y := range ys {
		labelWidth = max(labelWidth, min(len(y), maxLabelWidth))
	}
	scale := colormap.Symmetric(maxAbs(t.Z))

	var b strings.Builder
	if len(xs) > 0 {
		b.WriteString(strings.Repeat(" ", labelWidth+1))
		for _, x := range xs {
			style := previewKeyStyle
			if x == m.opts.Heatmap.SortColumn {
				style = previewSortStyle
			}
			b.WriteString(style.Width(cellWidth).Render(truncate(x, cellWidth-1)))
		}
		b.WriteString("\n")
	}

	rows := min(len(t.Z), m.Height)
	for i := 0; i < rows; i++ {
		label := ""
		if i < len(ys) {
			label = truncate(ys[i], maxLabelWidth)
		}
		b.WriteString(previewKeyStyle.Width(labelWidth + 1).Render(label))
		for _, v := range t.Z[i] {
			b.WriteString(m.cell(v, scale))
		}
		b.WriteString("\n")
	}
	if hidden := len(t.Z) - rows; hidden > 0 {
		b.WriteString(previewDimStyle.Render(fmt.Sprintf("… %d more rows", hidden)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m PreviewModel) cell(v *float64, scale colormap.Scale) string {
	if v == nil {
		return previewDimStyle.Width(cellWidth).Align(lipgloss.Center).Render("·")
	}
	bg := m.cmap.At(scale.Normalize(*v))
	fg := lipgloss.Color("#ffffff")
	if colormap.Luminance(bg) > 0.5 {
		fg = lipgloss.Color("#000000")
	}
	text := ""
	if m.opts.Heatmap.ShowAnnotations {
		text = fmt.Sprintf("%.2f", *v)
	}
	return lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Background(lipgloss.Color(colormap.Hex(bg))).
		Foreground(fg).
		Render(text)
}

func (m PreviewModel) footer() string {
	sortCol := "default"
	if m.opts.Heatmap.SortColumn != "" {
		sortCol = m.opts.Heatmap.SortColumn
	}
	view := "heatmap"
	if m.Result.ShowDendrogram {
		view = "dendrogram"
	}
	stats := m.Result.Stats
	parts := []string{
		"sort " + StyleValue.Render(sortCol),
		"annotations " + StyleValue.Render(onOff(m.opts.Heatmap.ShowAnnotations)),
		"view " + StyleValue.Render(view),
		fmt.Sprintf("%d/%d records", stats.Filtered, stats.Records),
	}
	return previewDimStyle.Render(strings.Join(parts, " · "))
}

// =============================================================================
// Helpers
// =============================================================================

// heatmapTrace returns the first heatmap trace of p.
func heatmapTrace(p plot.Plot) (plot.Trace, bool) {
	for _, t := range p.Data {
		if t.Type == plot.TypeHeatmap && len(t.Z) > 0 {
			return t, true
		}
	}
	return plot.Trace{}, false
}

// labels returns category labels. Numeric coordinates yield nil.
func labels(v any) []string {
	if s, ok := v.([]string); ok {
		return s
	}
	return nil
}

func maxAbs(z [][]*float64) float64 {
	m := 0.0
	for _, row := range z {
		for _, v := range row {
			if v != nil && !math.IsNaN(*v) {
				m = math.Max(m, math.Abs(*v))
			}
		}
	}
	return m
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
