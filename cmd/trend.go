package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Cumulative variance percent month by month",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.EntryCount == 0 {
		printNoData(e.year)
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("VARIANCE TREND  %d", e.year)))
	fmt.Println()

	if len(snap.TrendSeries) == 0 {
		fmt.Printf("  Trend: %s (no months with actuals)\n", snap.Trend)
		return nil
	}

	values := make([]decimal.Decimal, len(snap.TrendSeries))
	rows := make([][]string, 0, len(snap.TrendSeries))
	for i, p := range snap.TrendSeries {
		values[i] = p.VariancePercent
		rows = append(rows, []string{
			cli.FullMonthName(p.Month),
			cli.FormatSignedPercent(p.VariancePercent),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Through", "Cumulative Var %"},
		Rows:       rows,
		SignedCols: map[int]bool{1: true},
	}))
	fmt.Println()
	fmt.Printf("  %s  %s\n", cli.RenderSparkline(values), snap.Trend)
	return nil
}
