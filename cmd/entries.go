package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

var (
	flagEntriesCategory string
	flagEntriesMonth    string
	flagEntriesQuarter  int
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List ledger entries for the year",
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().StringVarP(&flagEntriesCategory, "category", "c", "", "Only this category id")
	entriesCmd.Flags().StringVarP(&flagEntriesMonth, "month", "m", "", "Only this month")
	entriesCmd.Flags().IntVar(&flagEntriesQuarter, "quarter", 0, "Only this quarter (1-4)")
	rootCmd.AddCommand(entriesCmd)
}

func runEntries(_ *cobra.Command, _ []string) error {
	var month int
	if flagEntriesMonth != "" {
		m, err := cli.ParseMonth(flagEntriesMonth)
		if err != nil {
			return err
		}
		month = m
	}
	if flagEntriesQuarter != 0 && (flagEntriesQuarter < 1 || flagEntriesQuarter > 4) {
		return fmt.Errorf("quarter %d out of range 1-4", flagEntriesQuarter)
	}

	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		entries, err := st.LoadEntries(ctx, e.year)
		if err != nil {
			return err
		}
		if flagEntriesCategory != "" {
			entries = pipeline.FilterByCategories(entries, []string{flagEntriesCategory})
		}
		if month > 0 {
			entries = pipeline.FilterByPeriod(entries, e.year, month, month)
		}
		if flagEntriesQuarter > 0 {
			qm := pipeline.QuarterMonths(flagEntriesQuarter)
			entries = pipeline.FilterByPeriod(entries, e.year, qm[0], qm[2])
		}
		if len(entries) == 0 {
			fmt.Printf("\n  No matching entries for %d.\n", e.year)
			return nil
		}

		names := make(map[string]string, len(e.categories))
		for _, c := range e.categories {
			names[c.ID] = c.Name
		}

		rows := make([][]string, 0, len(entries))
		for _, en := range source.SortEntries(entries) {
			name, ok := names[en.CategoryID]
			if !ok {
				name = en.CategoryID + " (unknown)"
			}
			rows = append(rows, []string{
				cli.MonthName(en.Month),
				name,
				cli.FormatMoney(en.Budget),
				nullMoneyShort(en.Actual),
				nullMoneyShort(en.Reforecast),
				cli.FormatMoney(en.Adjustment),
				en.Notes,
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Entries %d (%s)", e.year, cli.FormatNumber(int64(len(entries)))),
			Headers: []string{"Month", "Category", "Budget", "Actual", "Reforecast", "Adj.", "Notes"},
			Rows:    rows,
		}))
		return nil
	})
}

func nullMoneyShort(d decimal.NullDecimal) string {
	if !d.Valid {
		return "—"
	}
	return cli.FormatMoney(d.Decimal)
}
