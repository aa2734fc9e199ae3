// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/dimensions-query/pkg/types"
)

const (
	// DefaultBarWidth is the width in cells of the longest bar.
	DefaultBarWidth = 40

	maxLabelWidth = 40
	barGlyph      = "█"
)

// Plotter draws one frequency table as a chart.
type Plotter interface {
	Plot(w io.Writer, ft types.FrequencyTable, color string) error
}

// NopPlotter draws nothing.
type NopPlotter struct{}

// Plot implements Plotter.
func (NopPlotter) Plot(io.Writer, types.FrequencyTable, string) error { return nil }

// TerminalPlotter draws horizontal bar charts with lipgloss. Colors are
// emitted only when w is a color-capable terminal.
type TerminalPlotter struct {
	// Width is the length of the longest bar; <= 0 selects DefaultBarWidth.
	Width int
}

// Plot implements Plotter.
func (p TerminalPlotter) Plot(w io.Writer, ft types.FrequencyTable, color string) error {
	width := p.Width
	if width <= 0 {
		width = DefaultBarWidth
	}

	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true)
	axisStyle := r.NewStyle().Faint(true)
	barStyle := r.NewStyle().Foreground(lipgloss.Color(color))

	labelWidth := runewidth.StringWidth(ft.Category)
	maxCount := 0
	for _, row := range ft.Rows {
		if lw := runewidth.StringWidth(row.Value); lw > labelWidth {
			labelWidth = lw
		}
		if row.Count > maxCount {
			maxCount = row.Count
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(ft.Title))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(runewidth.FillRight(ft.Category, labelWidth) + " │ " + types.CountLabel))
	b.WriteString("\n")

	if len(ft.Rows) == 0 {
		b.WriteString("(no data)\n")
	}
	for _, row := range ft.Rows {
		label := runewidth.FillRight(runewidth.Truncate(row.Value, labelWidth, "…"), labelWidth)
		fmt.Fprintf(&b, "%s │ %s %d\n", label, barStyle.Render(strings.Repeat(barGlyph, barLength(row.Count, maxCount, width))), row.Count)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// barLength scales count against peak so the largest bar spans width
// cells. Any positive count gets at least one cell.
func barLength(count, peak, width int) int {
	if count <= 0 || peak <= 0 {
		return 0
	}
	n := count * width / peak
	if n < 1 {
		n = 1
	}
	return n
}
