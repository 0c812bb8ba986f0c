package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
)

var runwayCmd = &cobra.Command{
	Use:   "runway",
	Short: "Compensation runway projection",
	RunE:  runRunway,
}

func init() {
	rootCmd.AddCommand(runwayCmd)
}

func runRunway(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	ids := e.cfg.Compensation.CategoryIDs
	if len(ids) == 0 {
		fmt.Println("\n  No compensation categories configured.")
		fmt.Println("  Set compensation.category_ids with `bburn config` or `bburn setup`.")
		return nil
	}

	names := make([]string, 0, len(ids))
	for _, c := range e.categories {
		for _, id := range ids {
			if c.ID == id {
				names = append(names, c.Name)
			}
		}
	}

	r := snap.Runway
	through := "no actuals yet"
	if r.LastMonthWithActuals > 0 {
		through = "through " + cli.MonthName(r.LastMonthWithActuals)
	}
	verdict := "on track"
	if r.IsProjectedOverBudget {
		verdict = cli.RenderWarning("projected over budget")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("COMPENSATION RUNWAY  %d", e.year)))
	fmt.Println()

	rows := [][]string{
		{"Annual Budget", cli.FormatMoney(r.AnnualBudget)},
		{"YTD Actual (" + through + ")", cli.FormatMoney(r.YTDActual)},
		{"Net Available", cli.FormatMoney(r.NetAvailable)},
		cli.Separator,
		{fmt.Sprintf("Average (last %d mo)", r.AverageWindowMonths), cli.FormatMoney(r.LastThreeMonthAverage)},
		{"Remaining Months", fmt.Sprintf("%d", r.RemainingMonths)},
		{"Projected Remaining", cli.FormatMoney(r.ProjectedRemainingSpend)},
		{"Projected Total", cli.FormatMoney(r.ProjectedTotalSpend)},
		{"Budget vs Projection", cli.FormatVariance(r.BudgetVsProjection)},
		cli.Separator,
		{"Runway", cli.FormatMonths(r.RunwayMonths, r.Unconstrained)},
		{"Status", verdict},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Metric", "Value"},
		Rows:       rows,
		SignedCols: map[int]bool{1: true},
	}))
	fmt.Println()
	fmt.Println("  " + cli.RenderUtilizationBar(r.ProjectedTotalSpend, r.AnnualBudget, 30))
	fmt.Println(cli.RenderMuted("  Tracking: " + strings.Join(names, ", ")))
	return nil
}
