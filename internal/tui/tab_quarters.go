package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

func (a App) renderQuartersTab(cw int) string {
	perRow := 4
	if a.isCompactLayout() {
		perRow = 2
	}

	cards := make([]string, 4)
	widths := components.LayoutRow(cw, perRow)
	for i, q := range a.snap.Quarters {
		cards[i] = a.renderQuarterCard(q, widths[i%perRow])
	}

	var b strings.Builder
	for i := 0; i < 4; i += perRow {
		b.WriteString(components.CardRow(cards[i : i+perRow]))
		b.WriteString("\n")
	}
	b.WriteString(a.renderForecastSummary(cw))
	return b.String()
}

func (a App) renderQuarterCard(q model.QuarterlySummary, w int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	status := "forecast"
	statusColor := t.Forecast
	if q.AllFinal {
		status, statusColor = "final", t.Final
	}

	row := func(name, v string, style lipgloss.Style) string {
		inner := components.CardInnerWidth(w)
		pad := max(1, inner-lipgloss.Width(name)-lipgloss.Width(v))
		return label.Render(name) + label.Render(strings.Repeat(" ", pad)) + style.Render(v)
	}

	months := make([]string, 0, 3)
	for _, m := range pipeline.QuarterMonths(q.Quarter) {
		mode := a.snap.Tracking[m-1].Mode
		months = append(months, lipgloss.NewStyle().Foreground(t.ModeColor(mode)).Background(t.Surface).Render(cli.MonthName(m)))
	}

	tr := q.Tracking
	lines := []string{
		strings.Join(months, label.Render(" ")) + label.Render("  ") +
			lipgloss.NewStyle().Foreground(statusColor).Background(t.Surface).Bold(true).Render(status),
		row("Budget", cli.FormatMoney(tr.Budget), value),
		row("Actual", cli.FormatMoney(tr.Actual), value),
		row("Reforecast", cli.FormatMoney(tr.Reforecast), value),
		row("Adjusted", cli.FormatMoney(tr.Adjusted), value.Bold(true)),
		row("Variance", cli.FormatVariance(tr.Variance), value.Foreground(t.VarianceColor(tr.Variance))),
		row("To forecast", cli.FormatMoney(q.ForecastContribution), value),
	}
	return components.ContentCard(fmt.Sprintf("Q%d %d", q.Quarter, q.Year), strings.Join(lines, "\n"), w)
}

// renderForecastSummary shows each quarter's variance as a diverging bar
// and the full-year forecast the quarters add up to.
func (a App) renderForecastSummary(cw int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	scale := decimal.Zero
	for _, q := range a.snap.Quarters {
		scale = decimal.Max(scale, q.Tracking.Variance.Abs())
	}
	scaleF, _ := scale.Float64()

	half := max(8, (components.CardInnerWidth(cw)-30)/2)
	var b strings.Builder
	for _, q := range a.snap.Quarters {
		v, _ := q.Tracking.Variance.Float64()
		varStyle := label.Foreground(t.VarianceColor(q.Tracking.Variance))
		b.WriteString(label.Render(fmt.Sprintf("Q%d  ", q.Quarter)))
		b.WriteString(components.DivergingBar(v, scaleF, half))
		b.WriteString(varStyle.Render(fmt.Sprintf("  %12s", cli.FormatVariance(q.Tracking.Variance))))
		b.WriteString("\n")
	}

	k := a.snap.KPIs
	b.WriteString(label.Render("Full-year forecast ") + value.Render(cli.FormatMoney(k.FullYearForecast)))
	b.WriteString(label.Render("   target ") + value.Render(cli.FormatMoney(k.AnnualBudgetTarget)))
	b.WriteString(label.Render("   ") +
		label.Foreground(t.VarianceColor(k.ForecastVsTargetVariance)).Bold(true).Render(cli.FormatVariance(k.ForecastVsTargetVariance)))

	return components.ContentCard("Quarterly Variance", b.String(), cw)
}
