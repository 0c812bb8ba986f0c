package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline KPIs for the year",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.EntryCount == 0 {
		printNoData(e.year)
		return nil
	}

	k := snap.KPIs

	targetLabel := "Annual Target"
	if !k.TargetIsSet {
		targetLabel = "Annual Target (sum of budgets)"
	}
	through := "no actuals yet"
	if k.LastMonthWithActuals > 0 {
		through = "Jan - " + cli.MonthName(k.LastMonthWithActuals)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET SUMMARY  %d", e.year)))
	fmt.Println()

	rows := [][]string{
		{"YTD Window", through},
		{"YTD Actual", cli.FormatMoney(k.YTDActual)},
		{"YTD Budget", cli.FormatMoney(k.YTDBudget)},
		{"YTD Variance", cli.FormatVariance(k.Variance)},
		{"Variance %", cli.FormatSignedPercent(k.VariancePercent)},
		cli.Separator,
		{targetLabel, cli.FormatMoney(k.AnnualBudgetTarget)},
		{"Budget Utilization", cli.FormatPercent(k.BudgetUtilization)},
		{"Full-Year Forecast", cli.FormatMoney(k.FullYearForecast)},
		{"Target Achievement", cli.FormatPercent(k.TargetAchievement)},
		{"Forecast vs Target", cli.FormatVariance(k.ForecastVsTargetVariance)},
		cli.Separator,
		{"Burn Rate", cli.FormatMoney(k.BurnRate) + "/mo"},
		{"Months Remaining", fmt.Sprintf("%d", k.MonthsRemaining)},
		{"Runway", cli.FormatMonths(k.RunwayMonths, k.RunwayUnconstrained)},
		{"Variance Trend", string(k.VarianceTrend)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Metric", "Value"},
		Rows:       rows,
		SignedCols: map[int]bool{1: true},
	}))
	fmt.Println()
	fmt.Println("  " + cli.RenderUtilizationBar(k.YTDActual, k.AnnualBudgetTarget, 30))
	return nil
}
