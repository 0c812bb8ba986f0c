package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly [month]",
	Short: "Month-by-month tracking, or one month's category rollup",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, args []string) error {
	month := 0
	if len(args) == 1 {
		m, err := cli.ParseMonth(args[0])
		if err != nil {
			return err
		}
		month = m
	}

	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap.EntryCount == 0 {
		printNoData(e.year)
		return nil
	}

	if month > 0 {
		renderMonthRollup(snap.Months[month-1], snap.Tracking[month-1])
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTHLY TRACKING  %d", e.year)))
	fmt.Println()

	rows := make([][]string, 0, 13)
	var total model.Totals
	for i, md := range snap.Months {
		tr := snap.Tracking[i]
		total = total.Add(md.NetTotal)
		rows = append(rows, []string{
			cli.MonthName(i + 1),
			tr.Mode.String(),
			cli.FormatMoney(tr.Budget),
			cli.FormatMoney(tr.Counted),
			cli.FormatMoney(md.NetTotal.Adjustments),
			cli.FormatMoney(tr.Adjusted),
			cli.FormatVariance(tr.Variance),
		})
	}
	rows = append(rows, cli.Separator, []string{
		"Total", "",
		cli.FormatMoney(total.Budget),
		"", cli.FormatMoney(total.Adjustments), "", "",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Month", "Mode", "Budget", "Counted", "Adj.", "Adjusted", "Variance"},
		Rows:       rows,
		SignedCols: map[int]bool{6: true},
	}))
	fmt.Println(cli.RenderMuted("  Counted is the actual for Final months and the reforecast for Forecast months."))
	return nil
}

func renderMonthRollup(md model.MonthlyData, tr model.BudgetTracking) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s %d  %s", cli.FullMonthName(md.Month), md.Year, tr.Mode)))
	fmt.Println()

	row := func(name string, t model.Totals, variance, pct string) []string {
		return []string{
			name,
			cli.FormatMoney(t.Budget),
			cli.FormatMoney(t.Actual),
			cli.FormatMoney(t.Reforecast),
			cli.FormatMoney(t.Adjustments),
			variance,
			pct,
		}
	}

	var rows [][]string
	for _, g := range []model.GroupTotals{md.CostOfSales, md.Opex} {
		for _, sg := range g.Subgroups {
			for _, c := range sg.Categories {
				name := "    " + c.Category.Name
				if c.Category.Contra {
					name += " (contra)"
				}
				rows = append(rows, row(name, c.Totals,
					cli.FormatVariance(c.Variance), cli.FormatSignedPercent(c.VariancePercent)))
			}
			rows = append(rows, row("  "+sg.Name, sg.Totals,
				cli.FormatVariance(sg.Variance), cli.FormatSignedPercent(sg.VariancePercent)))
		}
		rows = append(rows, row(g.Group.Label(), g.Totals,
			cli.FormatVariance(g.Variance), cli.FormatSignedPercent(g.VariancePercent)))
		rows = append(rows, cli.Separator)
	}
	net := md.NetTotal
	rows = append(rows, row("Net Total", net,
		cli.FormatVariance(net.Variance()), cli.FormatSignedPercent(net.VariancePercent())))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Category", "Budget", "Actual", "Reforecast", "Adj.", "Variance", "Var %"},
		Rows:       rows,
		SignedCols: map[int]bool{5: true, 6: true},
	}))
	fmt.Println()
	fmt.Printf("  Counted %s  ·  Adjusted %s  ·  Tracking variance %s\n",
		cli.FormatMoney(tr.Counted), cli.FormatMoney(tr.Adjusted), cli.FormatVariance(tr.Variance))
}
