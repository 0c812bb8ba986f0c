package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bburn/internal/tui/theme"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values scaled between their min and max.
// A flat series renders at mid height.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var buf strings.Builder
	for _, v := range values {
		idx := len(blocks) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// Column is one bar in a ColumnChart.
type Column struct {
	Label string
	Value float64
	Color lipgloss.Color

	// Marker draws a tick at this value when positive (e.g. the month's budget).
	Marker float64
}

// ColumnChart renders vertical bars with a labeled y axis. height is the
// number of plot rows; the x axis and labels add two more.
func ColumnChart(cols []Column, width, height int) string {
	if len(cols) == 0 {
		return ""
	}
	t := theme.Active
	if height < 3 {
		height = 3
	}

	peak := 0.0
	for _, c := range cols {
		peak = math.Max(peak, math.Max(c.Value, c.Marker))
	}
	if peak <= 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	ceiling := math.Ceil(peak/step) * step

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	plotW := width - yLabelW - 1
	n := len(cols)
	barW := max(1, min(6, (plotW-(n-1))/n))

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		} else if row == (height+1)/2 {
			label = formatChartLabel(ceiling / 2)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, c := range cols {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			bar := lipgloss.NewStyle().Foreground(c.Color).Background(t.Surface)
			switch {
			case c.Marker > bottom && c.Marker <= top && c.Value < c.Marker:
				b.WriteString(markerStyle.Render(strings.Repeat("─", barW)))
			case c.Value >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case c.Value > bottom:
				frac := (c.Value - bottom) / (top - bottom)
				idx := max(0, min(int(frac*float64(len(blocks)))-1, len(blocks)-1))
				b.WriteString(bar.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))
	b.WriteString("\n")
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	for i, c := range cols {
		if i > 0 {
			b.WriteString(blank.Render(" "))
		}
		lbl := c.Label
		if len(lbl) > barW {
			lbl = lbl[:barW]
		}
		b.WriteString(axis.Render(fmt.Sprintf("%-*s", barW, lbl)))
	}
	return b.String()
}

// DivergingBar renders a signed value as a bar growing left (negative)
// or right (positive) from a center line. halfWidth cells per side.
func DivergingBar(v, scale float64, halfWidth int) string {
	t := theme.Active
	if scale <= 0 {
		scale = 1
	}
	cells := int(math.Round(math.Abs(v) / scale * float64(halfWidth)))
	cells = min(cells, halfWidth)

	blank := lipgloss.NewStyle().Background(t.Surface)
	center := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("│")
	under := lipgloss.NewStyle().Foreground(t.Under).Background(t.Surface)
	over := lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface)

	if v < 0 {
		return blank.Render(strings.Repeat(" ", halfWidth-cells)) +
			over.Render(strings.Repeat("█", cells)) +
			center +
			blank.Render(strings.Repeat(" ", halfWidth))
	}
	return blank.Render(strings.Repeat(" ", halfWidth)) +
		center +
		under.Render(strings.Repeat("█", cells)) +
		blank.Render(strings.Repeat(" ", halfWidth-cells))
}

// chartTickStep picks a round interval giving about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	scaled := func(div float64, suffix string) string {
		if v == math.Trunc(v/div)*div {
			return fmt.Sprintf("%.0f%s", v/div, suffix)
		}
		return fmt.Sprintf("%.1f%s", v/div, suffix)
	}
	switch {
	case v >= 1e9:
		return scaled(1e9, "B")
	case v >= 1e6:
		return scaled(1e6, "M")
	case v >= 1e3:
		return scaled(1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
