package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

var (
	flagEntryBudget     string
	flagEntryActual     string
	flagEntryReforecast string
	flagEntryAdjustment string
	flagEntryNotes      string
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Create, update or remove a single ledger entry",
}

var entrySetCmd = &cobra.Command{
	Use:   "set <category> <month>",
	Short: "Set fields on the entry for a category and month",
	Long: `Set fields on the entry for a category and month. Only the flags given
are changed; pass an empty string to --actual or --reforecast to mark the
figure as not yet known. An entry left with nothing in it is removed.`,
	Example: `  bburn entry set salaries mar --budget 42000 --actual 41250.10
  bburn entry set rent 4 --reforecast '$8,000'
  bburn entry set travel jun --actual ''`,
	Args: cobra.ExactArgs(2),
	RunE: runEntrySet,
}

var entryRmCmd = &cobra.Command{
	Use:     "rm <category> <month>",
	Aliases: []string{"delete"},
	Short:   "Remove the entry for a category and month",
	Args:    cobra.ExactArgs(2),
	RunE:    runEntryRm,
}

var entryShowCmd = &cobra.Command{
	Use:   "show <category> <month>",
	Short: "Print one entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntryShow,
}

func init() {
	f := entrySetCmd.Flags()
	f.StringVar(&flagEntryBudget, "budget", "", "Planned amount")
	f.StringVar(&flagEntryActual, "actual", "", "Realized amount (empty clears)")
	f.StringVar(&flagEntryReforecast, "reforecast", "", "Revised projection (empty clears)")
	f.StringVar(&flagEntryAdjustment, "adjustment", "", "Amount netted against the counted figure")
	f.StringVar(&flagEntryNotes, "notes", "", "Free-form notes")

	entryCmd.AddCommand(entrySetCmd, entryRmCmd, entryShowCmd)
	rootCmd.AddCommand(entryCmd)
}

// entryKey validates the category against the configured list and parses the month.
func entryKey(e *env, categoryID, month string) (model.EntryKey, error) {
	m, err := cli.ParseMonth(month)
	if err != nil {
		return model.EntryKey{}, err
	}
	for _, c := range e.categories {
		if c.ID == categoryID {
			return model.EntryKey{CategoryID: categoryID, Year: e.year, Month: m}, nil
		}
	}
	return model.EntryKey{}, fmt.Errorf("unknown category %q (see `bburn categories`)", categoryID)
}

func runEntrySet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	changed := false
	for _, name := range []string{"budget", "actual", "reforecast", "adjustment", "notes"} {
		changed = changed || flags.Changed(name)
	}
	if !changed {
		return errors.New("nothing to set: pass at least one of --budget, --actual, --reforecast, --adjustment, --notes")
	}

	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		key, err := entryKey(e, args[0], args[1])
		if err != nil {
			return err
		}

		entry, err := st.GetEntry(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			entry = model.NewEntry(key.CategoryID, key.Year, key.Month)
		} else if err != nil {
			return err
		}

		if flags.Changed("budget") {
			if entry.Budget, err = requiredAmount("budget", flagEntryBudget); err != nil {
				return err
			}
		}
		if flags.Changed("adjustment") {
			if entry.Adjustment, err = requiredAmount("adjustment", flagEntryAdjustment); err != nil {
				return err
			}
		}
		if flags.Changed("actual") {
			if entry.Actual, err = optionalAmount("actual", flagEntryActual); err != nil {
				return err
			}
		}
		if flags.Changed("reforecast") {
			if entry.Reforecast, err = optionalAmount("reforecast", flagEntryReforecast); err != nil {
				return err
			}
		}
		if flags.Changed("notes") {
			entry.Notes = flagEntryNotes
		}

		saved, deleted, err := st.SaveEntry(ctx, entry)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Printf("  %s %s %d is empty and was removed\n", key.CategoryID, cli.MonthName(key.Month), key.Year)
			return nil
		}
		printEntry(saved)
		return nil
	})
}

func runEntryRm(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		key, err := entryKey(e, args[0], args[1])
		if err != nil {
			return err
		}
		if err := st.DeleteEntry(ctx, key); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no entry for %s %s %d", key.CategoryID, cli.MonthName(key.Month), key.Year)
			}
			return err
		}
		fmt.Printf("  Removed %s %s %d\n", key.CategoryID, cli.MonthName(key.Month), key.Year)
		return nil
	})
}

func runEntryShow(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, e *env, st *store.Store) error {
		key, err := entryKey(e, args[0], args[1])
		if err != nil {
			return err
		}
		entry, err := st.GetEntry(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no entry for %s %s %d", key.CategoryID, cli.MonthName(key.Month), key.Year)
		}
		if err != nil {
			return err
		}
		printEntry(entry)
		return nil
	})
}

func requiredAmount(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := source.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s %q: %w", field, s, err)
	}
	return d, nil
}

func optionalAmount(field, s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := source.ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("--%s %q: %w", field, s, err)
	}
	return model.Amount(d), nil
}

func printEntry(e model.Entry) {
	rows := [][]string{
		{"Category", e.CategoryID},
		{"Period", fmt.Sprintf("%s %d (Q%d)", cli.FullMonthName(e.Month), e.Year, e.Quarter())},
		{"Budget", cli.FormatMoneyExact(e.Budget)},
		{"Actual", nullMoney(e.Actual)},
		{"Reforecast", nullMoney(e.Reforecast)},
		{"Adjustment", cli.FormatMoneyExact(e.Adjustment)},
	}
	if e.Notes != "" {
		rows = append(rows, []string{"Notes", e.Notes})
	}
	if !e.UpdatedAt.IsZero() {
		rows = append(rows, []string{"Updated", e.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}))
}

func nullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "—"
	}
	return cli.FormatMoneyExact(d.Decimal)
}
