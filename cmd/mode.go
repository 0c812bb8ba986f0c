package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/store"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Mark months Final or Forecast",
}

func init() {
	modeCmd.AddCommand(
		newModeSetCmd("final", "Mark months Final so their actuals count", model.ModeFinal),
		newModeSetCmd("forecast", "Mark months Forecast so their reforecasts count", model.ModeForecast),
		&cobra.Command{
			Use:   "toggle <month>...",
			Short: "Flip months between Final and Forecast",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runModeToggle,
		},
	)
	rootCmd.AddCommand(modeCmd)
}

func newModeSetCmd(use, short string, mode model.Mode) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <month>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			months, err := parseMonths(args)
			if err != nil {
				return err
			}
			return withStore(func(ctx context.Context, e *env, st *store.Store) error {
				for _, m := range months {
					if err := st.SetForecastMode(ctx, e.year, m, mode); err != nil {
						return err
					}
					fmt.Printf("  %s %d: %s\n", cli.FullMonthName(m), e.year, mode)
				}
				return nil
			})
		},
	}
}

func runModeToggle(_ *cobra.Command, args []string) error {
	months, err := parseMonths(args)
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		for _, m := range months {
			mode, err := st.ToggleForecastMode(ctx, e.year, m)
			if err != nil {
				return err
			}
			fmt.Printf("  %s %d: %s\n", cli.FullMonthName(m), e.year, mode)
		}
		return nil
	})
}

// parseMonths accepts month numbers or names; "all" expands to the full year.
func parseMonths(args []string) ([]int, error) {
	if len(args) == 1 && args[0] == "all" {
		out := make([]int, 12)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}
	out := make([]int, 0, len(args))
	for _, a := range args {
		m, err := cli.ParseMonth(a)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
