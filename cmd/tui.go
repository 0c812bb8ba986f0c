package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/tui"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	flagQuiet = true // log output would corrupt the alt screen
	e, err := loadEnv()
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(st, tui.Options{
		Year:            e.year,
		Categories:      e.categories,
		CompensationIDs: e.cfg.Compensation.CategoryIDs,
		Config:          e.cfg,
		NeedSetup:       !config.Exists(),
		Logger:          e.logger.WithComponent(log.ComponentTUI),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
