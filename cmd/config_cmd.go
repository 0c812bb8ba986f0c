// Package cmd implements the bburn CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	cfg := e.cfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultYear > 0 {
		fmt.Printf("    Default year:     %d\n", cfg.General.DefaultYear)
	} else {
		fmt.Printf("    Default year:     current (%d)\n", e.year)
	}
	if cfg.General.CategoriesFile != "" {
		fmt.Printf("    Categories file:  %s\n", cfg.General.CategoriesFile)
	} else {
		fmt.Printf("    Categories file:  built-in (%d categories)\n", len(e.categories))
	}
	fmt.Printf("    Database:         %s\n", e.dbPath)
	fmt.Println()

	fmt.Println("  [Compensation]")
	if len(cfg.Compensation.CategoryIDs) > 0 {
		fmt.Printf("    Runway categories: %s\n", strings.Join(cfg.Compensation.CategoryIDs, ", "))
	} else {
		fmt.Println("    Runway categories: none (runway disabled)")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh: %v every %ds\n", cfg.TUI.AutoRefresh, cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval: %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `bburn setup` to reconfigure.")
	return nil
}
