package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show or change the annual budget target",
	RunE:  runTargetShow,
}

func init() {
	targetCmd.AddCommand(
		&cobra.Command{
			Use:   "set <amount>",
			Short: "Set the annual target for the year",
			Args:  cobra.ExactArgs(1),
			RunE:  runTargetSet,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the target; the sum of monthly budgets is used instead",
			Args:  cobra.NoArgs,
			RunE:  runTargetClear,
		},
	)
	rootCmd.AddCommand(targetCmd)
}

func runTargetShow(_ *cobra.Command, _ []string) error {
	e, snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	k := snap.KPIs
	origin := "set"
	if !k.TargetIsSet {
		origin = "sum of monthly budgets"
	}
	fmt.Printf("\n  Target %d: %s (%s)\n", e.year, cli.FormatMoneyExact(k.AnnualBudgetTarget), origin)
	fmt.Printf("  Forecast:    %s  %s\n\n", cli.FormatMoney(k.FullYearForecast), cli.FormatVariance(k.ForecastVsTargetVariance))
	return nil
}

func runTargetSet(_ *cobra.Command, args []string) error {
	amount, err := source.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("target amount: %w", err)
	}
	if amount.IsNegative() {
		return errors.New("target cannot be negative")
	}
	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		if err := st.SetYearlyTarget(ctx, e.year, amount); err != nil {
			return err
		}
		fmt.Printf("  Target %d set to %s\n", e.year, cli.FormatMoneyExact(amount))
		return nil
	})
}

func runTargetClear(_ *cobra.Command, _ []string) error {
	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		if err := st.ClearYearlyTarget(ctx, e.year); err != nil {
			return err
		}
		fmt.Printf("  Target %d cleared\n", e.year)
		return nil
	})
}
