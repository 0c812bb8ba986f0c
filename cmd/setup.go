package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	cfg, err := tui.RunSetup(e.cfg, e.categories, e.year)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Println("  Setup cancelled; nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `bburn setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
