package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/config"
)

var flagCategoriesYAML bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the configured categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&flagCategoriesYAML, "yaml", false, "Print as a categories file, ready to edit")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	if flagCategoriesYAML {
		data, err := config.MarshalCategories(e.categories)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	comp := make(map[string]bool, len(e.cfg.Compensation.CategoryIDs))
	for _, id := range e.cfg.Compensation.CategoryIDs {
		comp[id] = true
	}

	rows := make([][]string, 0, len(e.categories))
	for _, c := range e.categories {
		flags := ""
		if c.Contra {
			flags += "contra "
		}
		if comp[c.ID] {
			flags += "runway"
		}
		rows = append(rows, []string{c.ID, c.Name, c.Group.Label(), c.Subgroup, flags})
	}

	origin := "built-in defaults"
	if p := firstNonEmpty(flagCategories, e.cfg.General.CategoriesFile); p != "" {
		origin = p
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Categories (%d)", len(e.categories)),
		Headers: []string{"ID", "Name", "Group", "Subgroup", "Flags"},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderMuted("  Source: " + origin))
	return nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
