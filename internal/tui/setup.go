package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

// setupValues backs the first-run form fields.
type setupValues struct {
	year            string
	categoriesFile  string
	compensationIDs []string
	theme           string
	autoRefresh     bool
}

func newSetupValues(cfg config.Config, year int) setupValues {
	return setupValues{
		year:            strconv.Itoa(year),
		categoriesFile:  cfg.General.CategoriesFile,
		compensationIDs: append([]string(nil), cfg.Compensation.CategoryIDs...),
		theme:           cfg.Appearance.Theme,
		autoRefresh:     cfg.TUI.AutoRefresh,
	}
}

// newSetupForm builds the first-run form. Compensation choices come from
// the loaded categories so only known ids can be picked.
func newSetupForm(categories []model.Category, vals *setupValues) *huh.Form {
	compOptions := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		label := fmt.Sprintf("%s (%s)", c.Name, c.Group.Label())
		opt := huh.NewOption(label, c.ID)
		for _, id := range vals.compensationIDs {
			if id == c.ID {
				opt = opt.Selected(true)
			}
		}
		compOptions = append(compOptions, opt)
	}

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to bburn").
				Description("Budget tracking and forecasting for your ledger.\nThese settings are saved to "+config.ConfigPath()),
			huh.NewInput().
				Title("Default year").
				Description("The year dashboards open on").
				Value(&vals.year).
				Validate(validateYear),
			huh.NewInput().
				Title("Categories file").
				Description("YAML category list; leave empty for the built-in chart of accounts").
				Placeholder("/path/to/categories.yaml").
				Value(&vals.categoriesFile),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Compensation categories").
				Description("Tracked by the runway projection").
				Options(compOptions...).
				Value(&vals.compensationIDs),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&vals.theme),
			huh.NewConfirm().
				Title("Auto-refresh the dashboard?").
				Value(&vals.autoRefresh),
		),
	).WithShowHelp(true)
}

func validateYear(s string) error {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < 1900 || y > 9999 {
		return errors.New("enter a four-digit year")
	}
	return nil
}

// apply writes the form values into cfg.
func (v setupValues) apply(cfg config.Config) config.Config {
	if y, err := strconv.Atoi(strings.TrimSpace(v.year)); err == nil {
		cfg.General.DefaultYear = y
	}
	cfg.General.CategoriesFile = strings.TrimSpace(v.categoriesFile)
	cfg.Compensation.CategoryIDs = v.compensationIDs
	cfg.Appearance.Theme = v.theme
	cfg.TUI.AutoRefresh = v.autoRefresh
	return cfg
}

// RunSetup runs the setup form outside the dashboard and returns the
// updated config. The caller saves it.
func RunSetup(cfg config.Config, categories []model.Category, year int) (config.Config, error) {
	vals := newSetupValues(cfg, year)
	if err := newSetupForm(categories, &vals).Run(); err != nil {
		return cfg, err
	}
	out := vals.apply(cfg)
	if out.General.CategoriesFile != "" {
		if _, err := config.LoadCategories(out.General.CategoriesFile); err != nil {
			return cfg, err
		}
	}
	return out, nil
}

// saveSetupConfig applies the form values to the app and writes the config.
func (a *App) saveSetupConfig() error {
	a.cfg = a.setupVals.apply(a.cfg)
	if a.cfg.General.DefaultYear > 0 {
		a.year = a.cfg.General.DefaultYear
	}
	a.compIDs = a.cfg.Compensation.CategoryIDs
	a.autoRefresh = a.cfg.TUI.AutoRefresh
	theme.SetActive(a.cfg.Appearance.Theme)

	if a.cfg.General.CategoriesFile != "" {
		cats, err := config.LoadCategories(a.cfg.General.CategoriesFile)
		if err != nil {
			return err
		}
		a.categories = cats
	}
	return config.Save(a.cfg)
}
