package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bburn/internal/tui/theme"
)

// ColorForPct grades a utilization ratio: green well under plan, red at or over it.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Over
	case pct >= 0.9:
		return t.Warn
	case pct >= 0.75:
		return t.Forecast
	default:
		return t.Under
	}
}

func clampRatio(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 1:
		return 1
	default:
		return pct
	}
}

// ProgressBar renders a solid bar of width cells for pct (0..1).
// Ratios above 1 draw a full bar in the over-budget color.
func ProgressBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	bar := progress.New(
		progress.WithSolidFill(string(ColorForPct(pct))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar.ViewAs(clampRatio(pct))
}

// UtilizationBar renders "label [bar] 82%" for spend against a target.
func UtilizationBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(ColorForPct(pct)).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		space +
		ProgressBar(pct, barWidth) +
		space +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
