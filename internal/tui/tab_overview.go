package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	k := a.snap.KPIs

	targetNote := "sum of budgets"
	if k.TargetIsSet {
		targetNote = "set · [t] edit"
	}
	ytdNote := "no actuals yet"
	if k.LastMonthWithActuals > 0 {
		ytdNote = "through " + cli.MonthName(k.LastMonthWithActuals)
	}

	top := components.MetricCardRow([]components.Metric{
		{Label: "YTD Actual", Value: cli.FormatMoney(k.YTDActual), Note: ytdNote},
		{Label: "YTD Budget", Value: cli.FormatMoney(k.YTDBudget)},
		{
			Label:      "YTD Variance",
			Value:      cli.FormatVariance(k.Variance),
			Note:       cli.FormatSignedPercent(k.VariancePercent),
			ValueColor: t.VarianceColor(k.Variance),
		},
		{Label: "Full-Year Forecast", Value: cli.FormatMoney(k.FullYearForecast), Note: cli.FormatPercent(k.TargetAchievement) + " of target"},
	}, cw)

	runwayNote := fmt.Sprintf("%d months left", k.MonthsRemaining)
	bottom := components.MetricCardRow([]components.Metric{
		{Label: "Annual Target", Value: cli.FormatMoney(k.AnnualBudgetTarget), Note: targetNote},
		{
			Label:      "Forecast vs Target",
			Value:      cli.FormatVariance(k.ForecastVsTargetVariance),
			ValueColor: t.VarianceColor(k.ForecastVsTargetVariance),
		},
		{Label: "Burn Rate", Value: cli.FormatMoney(k.BurnRate) + "/mo"},
		{Label: "Runway", Value: cli.FormatMonths(k.RunwayMonths, k.RunwayUnconstrained), Note: runwayNote},
	}, cw)

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(bottom)
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(a.renderUtilizationCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderMonthChart(cw))
		b.WriteString("\n")
		b.WriteString(a.renderTrendCard(cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	left := lipgloss.JoinVertical(lipgloss.Left, a.renderUtilizationCard(widths[0]), a.renderTrendCard(widths[0]))
	b.WriteString(components.CardRow([]string{left, a.renderMonthChart(widths[1])}))
	return b.String()
}

func (a App) renderUtilizationCard(w int) string {
	k := a.snap.KPIs
	inner := components.CardInnerWidth(w)
	labelW := 12
	barW := max(10, inner-labelW-6)

	utilization, _ := k.BudgetUtilization.Div(hundredPct).Float64()
	achievement, _ := k.TargetAchievement.Div(hundredPct).Float64()

	body := components.UtilizationBar("Spent YTD", utilization, labelW, barW) + "\n" +
		components.UtilizationBar("Forecast", achievement, labelW, barW)
	return components.ContentCard("Against Target", body, w)
}

func (a App) renderMonthChart(w int) string {
	t := theme.Active
	cols := make([]components.Column, 12)
	for i, tr := range a.snap.Tracking {
		v, _ := tr.Adjusted.Float64()
		budget, _ := tr.Budget.Float64()
		cols[i] = components.Column{
			Label:  cli.MonthName(i + 1),
			Value:  v,
			Marker: budget,
			Color:  t.ModeColor(tr.Mode),
		}
	}

	legend := lipgloss.NewStyle().Background(t.Surface)
	key := legend.Foreground(t.Final).Render("█ final") + legend.Render("  ") +
		legend.Foreground(t.Forecast).Render("█ forecast") + legend.Render("  ") +
		legend.Foreground(t.TextPrimary).Render("─ budget")

	chart := components.ColumnChart(cols, components.CardInnerWidth(w), 8)
	return components.ContentCard("Monthly Spend", chart+"\n"+key, w)
}

func (a App) renderTrendCard(w int) string {
	t := theme.Active
	trend := a.snap.Trend

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TrendColor(trend)).Background(t.Surface).Bold(true)

	body := label.Render("Variance trend  ") + value.Render(string(trend))
	if len(a.snap.TrendSeries) > 0 {
		vals := make([]float64, len(a.snap.TrendSeries))
		for i, p := range a.snap.TrendSeries {
			vals[i], _ = p.VariancePercent.Float64()
		}
		last := a.snap.TrendSeries[len(a.snap.TrendSeries)-1]
		body += "\n" + components.Sparkline(vals, t.TrendColor(trend)) +
			label.Render(fmt.Sprintf("  %s → %s", cli.MonthName(a.snap.TrendSeries[0].Month), cli.MonthName(last.Month))) +
			label.Render("  cumulative ") + value.Render(cli.FormatSignedPercent(last.VariancePercent))
	}
	if a.snap.UnknownCount > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)
		body += "\n" + warn.Render(fmt.Sprintf("%d entries reference unknown categories", a.snap.UnknownCount))
	}
	return components.ContentCard("Trend", body, w)
}

var hundredPct = decimal.NewFromInt(100)
