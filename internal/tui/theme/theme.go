// Package theme holds the color palettes used by the bburn dashboard.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// Theme maps dashboard color roles to concrete colors.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // card and panel fill
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Budget semantics.
	Under    lipgloss.Color // spending below plan
	Over     lipgloss.Color // spending above plan
	Warn     lipgloss.Color
	Final    lipgloss.Color // month closed with actuals
	Forecast lipgloss.Color // month still projected
}

// Active is the theme every component renders with.
var Active = FlexokiDark

// FlexokiDark is the default warm dark palette.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Under:        lipgloss.Color("#879A39"),
	Over:         lipgloss.Color("#D14D41"),
	Warn:         lipgloss.Color("#DA702C"),
	Final:        lipgloss.Color("#4385BE"),
	Forecast:     lipgloss.Color("#D0A215"),
}

// CatppuccinMocha is a soft pastel palette.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Under:        lipgloss.Color("#A6E3A1"),
	Over:         lipgloss.Color("#F38BA8"),
	Warn:         lipgloss.Color("#FAB387"),
	Final:        lipgloss.Color("#94E2D5"),
	Forecast:     lipgloss.Color("#F9E2AF"),
}

// TokyoNight is a cool blue palette.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Under:        lipgloss.Color("#9ECE6A"),
	Over:         lipgloss.Color("#F7768E"),
	Warn:         lipgloss.Color("#FF9E64"),
	Final:        lipgloss.Color("#7DCFFF"),
	Forecast:     lipgloss.Color("#E0AF68"),
}

// Terminal sticks to the ANSI 16 colors.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Under:        lipgloss.Color("2"),
	Over:         lipgloss.Color("1"),
	Warn:         lipgloss.Color("3"),
	Final:        lipgloss.Color("4"),
	Forecast:     lipgloss.Color("3"),
}

// All lists the selectable themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns the named theme, or FlexokiDark when unknown.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive switches the active theme.
func SetActive(name string) {
	Active = ByName(name)
}

// VarianceColor colors a variance: positive is under plan.
func (t Theme) VarianceColor(v decimal.Decimal) lipgloss.Color {
	switch v.Sign() {
	case 1:
		return t.Under
	case -1:
		return t.Over
	default:
		return t.TextMuted
	}
}

// ModeColor colors a month's forecast mode.
func (t Theme) ModeColor(m model.Mode) lipgloss.Color {
	if m == model.ModeFinal {
		return t.Final
	}
	return t.Forecast
}

// TrendColor colors a variance trend label.
func (t Theme) TrendColor(tr model.Trend) lipgloss.Color {
	switch tr {
	case model.TrendImproving, model.TrendUnderBudget:
		return t.Under
	case model.TrendWorsening, model.TrendOverBudget:
		return t.Over
	default:
		return t.TextMuted
	}
}
