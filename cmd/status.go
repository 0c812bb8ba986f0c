package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Which months are Final and which are still Forecast",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST MODES  %d", e.year)))
	fmt.Println()

	rows := make([][]string, 0, 4)
	finals := 0
	for q := 1; q <= 4; q++ {
		row := []string{fmt.Sprintf("Q%d", q)}
		for _, m := range pipeline.QuarterMonths(q) {
			tr := snap.Tracking[m-1]
			cell := cli.MonthName(m) + " ○ forecast"
			if tr.Mode == model.ModeFinal {
				cell = cli.MonthName(m) + " ● final"
				finals++
			}
			row = append(row, cell)
		}
		status := "Forecast"
		if snap.Quarters[q-1].AllFinal {
			status = "Final"
		}
		rows = append(rows, append(row, status))
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Quarter", "", "", "", "Counts"},
		Rows:    rows,
	}))
	fmt.Printf("  %d of 12 months final.", finals)
	if snap.EntryCount > 0 {
		fmt.Printf("  %s entries, last actuals in %s.",
			cli.FormatNumber(int64(snap.EntryCount)), lastActualsLabel(snap.YTD.LastMonthWithActuals))
	}
	fmt.Println()
	fmt.Println(cli.RenderMuted("  " + strings.Join([]string{
		"bburn mode final <month>",
		"bburn mode forecast <month>",
		"bburn mode toggle <month>",
	}, "  |  ")))
	return nil
}

func lastActualsLabel(month int) string {
	if month == 0 {
		return "none"
	}
	return cli.FullMonthName(month)
}
