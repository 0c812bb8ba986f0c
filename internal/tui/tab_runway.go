package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

func (a App) renderRunwayTab(cw int) string {
	t := theme.Active
	r := a.snap.Runway

	if len(a.compIDs) == 0 {
		return components.ContentCard("Compensation Runway",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No compensation categories configured. Set compensation.category_ids in the config."), cw)
	}

	verdict := "on track"
	verdictColor := t.Under
	if r.IsProjectedOverBudget {
		verdict, verdictColor = "projected over budget", t.Over
	}

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Annual Comp Budget", Value: cli.FormatMoney(r.AnnualBudget)},
		{Label: "Net Available", Value: cli.FormatMoney(r.NetAvailable), Note: "after " + cli.FormatMoney(r.YTDActual) + " spent"},
		{
			Label:      "Runway",
			Value:      cli.FormatMonths(r.RunwayMonths, r.Unconstrained),
			Note:       fmt.Sprintf("%d months remain", r.RemainingMonths),
			ValueColor: verdictColor,
		},
		{
			Label:      "Budget vs Projection",
			Value:      cli.FormatVariance(r.BudgetVsProjection),
			Note:       verdict,
			ValueColor: t.VarianceColor(r.BudgetVsProjection),
		},
	}, cw)

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	line := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-30s", name)) + value.Render(fmt.Sprintf("%14s", v))
	}

	window := fmt.Sprintf("Avg of last %d month(s)", r.AverageWindowMonths)
	through := "no actuals yet"
	if r.LastMonthWithActuals > 0 {
		through = "through " + cli.FullMonthName(r.LastMonthWithActuals)
	}
	detail := strings.Join([]string{
		line("YTD actual ("+through+")", cli.FormatMoney(r.YTDActual)),
		line(window, cli.FormatMoney(r.LastThreeMonthAverage)),
		line("Projected remaining spend", cli.FormatMoney(r.ProjectedRemainingSpend)),
		line("Projected total spend", cli.FormatMoney(r.ProjectedTotalSpend)),
	}, "\n")

	var pct float64
	if r.AnnualBudget.IsPositive() {
		pct, _ = r.ProjectedTotalSpend.Div(r.AnnualBudget).Float64()
	}
	inner := components.CardInnerWidth(cw)
	bar := components.UtilizationBar("Projected", pct, 12, max(10, inner-20))

	var names []string
	for _, c := range a.categories {
		for _, id := range a.compIDs {
			if c.ID == id {
				names = append(names, c.Name)
			}
		}
	}
	tracked := label.Render("Tracking: " + strings.Join(names, ", "))

	body := detail + "\n\n" + bar + "\n" + tracked
	return cards + "\n" + components.ContentCard("Compensation Runway", body, cw)
}
