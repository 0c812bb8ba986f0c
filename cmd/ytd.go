package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
)

var flagYTDTop int

var ytdCmd = &cobra.Command{
	Use:   "ytd",
	Short: "Year-to-date totals by category",
	RunE:  runYTD,
}

func init() {
	ytdCmd.Flags().IntVarP(&flagYTDTop, "top", "n", 0, "Show only the N categories with the largest variance")
	rootCmd.AddCommand(ytdCmd)
}

func runYTD(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.EntryCount == 0 {
		printNoData(e.year)
		return nil
	}

	ytd := snap.YTD
	fmt.Println()
	if ytd.LastMonthWithActuals == 0 {
		fmt.Println(cli.RenderTitle(fmt.Sprintf("YEAR TO DATE  %d", e.year)))
		fmt.Println()
		fmt.Println("  No month has actuals yet; YTD is empty.")
		return nil
	}
	fmt.Println(cli.RenderTitle(fmt.Sprintf("YEAR TO DATE  %d  ·  Jan - %s", e.year, cli.MonthName(ytd.LastMonthWithActuals))))
	fmt.Println()

	cats := append([]model.CategorySummary(nil), snap.YTDCategories...)
	if flagYTDTop > 0 {
		sort.SliceStable(cats, func(i, j int) bool {
			return cats[i].Variance.Abs().GreaterThan(cats[j].Variance.Abs())
		})
		if len(cats) > flagYTDTop {
			cats = cats[:flagYTDTop]
		}
	}

	rows := make([][]string, 0, len(cats)+3)
	for _, cs := range cats {
		rows = append(rows, []string{
			cs.Category.Name,
			cs.Category.Group.Label(),
			cli.FormatMoney(cs.Totals.Budget),
			cli.FormatMoney(cs.Totals.Actual),
			cli.FormatVariance(cs.Variance),
			cli.FormatSignedPercent(cs.VariancePercent),
		})
	}
	rows = append(rows, cli.Separator, []string{
		"Total",
		"",
		cli.FormatMoney(ytd.Totals.Budget),
		cli.FormatMoney(ytd.Totals.Actual),
		cli.FormatVariance(ytd.Variance),
		cli.FormatSignedPercent(ytd.VariancePercent),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Category", "Group", "Budget", "Actual", "Variance", "Var %"},
		Rows:       rows,
		SignedCols: map[int]bool{4: true, 5: true},
	}))
	if ytd.Totals.Adjustments.IsPositive() || ytd.Totals.Adjustments.IsNegative() {
		fmt.Println(cli.RenderMuted("  Adjustments in window: " + cli.FormatMoney(ytd.Totals.Adjustments)))
	}
	return nil
}
