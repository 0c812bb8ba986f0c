package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
)

var quarterlyCmd = &cobra.Command{
	Use:   "quarterly",
	Short: "Quarter tracking and the full-year forecast",
	RunE:  runQuarterly,
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "How each quarter contributes to the full-year forecast",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(quarterlyCmd)
	rootCmd.AddCommand(forecastCmd)
}

func runQuarterly(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.EntryCount == 0 {
		printNoData(e.year)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("QUARTERLY  %d", e.year)))
	fmt.Println()

	rows := make([][]string, 0, 6)
	for _, q := range snap.Quarters {
		tr := q.Tracking
		status := "Forecast"
		if q.AllFinal {
			status = "Final"
		}
		rows = append(rows, []string{
			fmt.Sprintf("Q%d", q.Quarter),
			status,
			cli.FormatMoney(tr.Budget),
			cli.FormatMoney(tr.Actual),
			cli.FormatMoney(tr.Reforecast),
			cli.FormatMoney(tr.Adjusted),
			cli.FormatVariance(tr.Variance),
		})
	}
	rows = append(rows, cli.Separator, []string{
		"Year", "", "", "", "", cli.FormatMoney(snap.KPIs.FullYearForecast), "",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Quarter", "Status", "Budget", "Actual", "Reforecast", "Adjusted", "Variance"},
		Rows:       rows,
		SignedCols: map[int]bool{6: true},
	}))
	fmt.Println(cli.RenderMuted("  A quarter is Final only when all three of its months are Final; otherwise its reforecast counts."))
	return nil
}

func runForecast(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.EntryCount == 0 {
		printNoData(e.year)
		return nil
	}

	k := snap.KPIs

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FULL-YEAR FORECAST  %d", e.year)))
	fmt.Println()

	rows := make([][]string, 0, 7)
	for _, q := range snap.Quarters {
		source := "reforecast"
		if q.AllFinal {
			source = "actual"
		}
		rows = append(rows, []string{
			fmt.Sprintf("Q%d", q.Quarter),
			quarterModes(snap, q.Quarter),
			source,
			cli.FormatMoney(q.ForecastContribution),
		})
	}
	rows = append(rows, cli.Separator,
		[]string{"Forecast", "", "", cli.FormatMoney(k.FullYearForecast)},
		[]string{"Target", "", "", cli.FormatMoney(k.AnnualBudgetTarget)},
		[]string{"Variance", "", "", cli.FormatVariance(k.ForecastVsTargetVariance)},
	)

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Quarter", "Months", "Counts", "Contribution"},
		Rows:       rows,
		SignedCols: map[int]bool{3: true},
	}))
	fmt.Println()
	fmt.Println("  " + cli.RenderUtilizationBar(k.FullYearForecast, k.AnnualBudgetTarget, 30))
	return nil
}

// quarterModes renders the quarter's months as e.g. "Jan● Feb● Mar○"
// where ● is Final and ○ is Forecast.
func quarterModes(snap pipeline.Snapshot, quarter int) string {
	parts := make([]string, 0, 3)
	for _, m := range pipeline.QuarterMonths(quarter) {
		mark := "○"
		if snap.Tracking[m-1].Mode == model.ModeFinal {
			mark = "●"
		}
		parts = append(parts, cli.MonthName(m)+mark)
	}
	return strings.Join(parts, " ")
}
