package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

const (
	tabOverview = iota
	tabMonths
	tabQuarters
	tabRunway
)

// monthsState is the cursor on the month table; 0 is January.
type monthsState struct {
	cursor int
}

func (m *monthsState) moveCursor(delta int) {
	m.cursor = max(0, min(11, m.cursor+delta))
}

func (m monthsState) month() int {
	return m.cursor + 1
}

// updateMonthsKey handles keys owned by the Months tab. ok is false when
// the key should fall through to the global bindings.
func (a App) updateMonthsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.months.moveCursor(1)
	case "k", "up":
		a.months.moveCursor(-1)
	case "g", "home":
		a.months.cursor = 0
	case "G", "end":
		a.months.cursor = 11
	case " ", "space", "enter":
		month := a.months.month()
		next := model.ModeFinal
		if a.snap.Tracking[a.months.cursor].Mode == model.ModeFinal {
			next = model.ModeForecast
		}
		return a, setModeCmd(a.store, a.year, month, next), true
	case "f":
		return a, setModeCmd(a.store, a.year, a.months.month(), model.ModeFinal), true
	case "F":
		return a, setModeCmd(a.store, a.year, a.months.month(), model.ModeForecast), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func monthAbbr(month int) string {
	return cli.MonthName(month)
}

type monthColumn struct {
	title string
	width int
}

func (a App) renderMonthsTab(cw int) string {
	t := theme.Active

	cols := []monthColumn{
		{"Month", 6}, {"Mode", 9}, {"Budget", 12}, {"Actual", 12}, {"Reforecast", 12},
		{"Adj.", 10}, {"Counted", 12}, {"Adjusted", 12}, {"Variance", 12},
	}
	if a.isCompactLayout() {
		// Drop raw actual and reforecast; Counted already shows the one in effect.
		cols = append(cols[:3:3], cols[5:]...)
	}

	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	cell := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selBg := t.SurfaceHover

	var b strings.Builder
	for i, c := range cols {
		b.WriteString(head.Render(alignCell(c.title, c.width, i > 1)))
		b.WriteString(head.Render(" "))
	}
	b.WriteString("\n")

	for i := 0; i < 12; i++ {
		md := a.snap.Months[i]
		tr := a.snap.Tracking[i]
		selected := i == a.months.cursor

		values := map[string]string{
			"Month":      monthAbbr(i + 1),
			"Mode":       tr.Mode.String(),
			"Budget":     cli.FormatMoney(md.NetTotal.Budget),
			"Actual":     cli.FormatMoney(md.NetTotal.Actual),
			"Reforecast": cli.FormatMoney(md.NetTotal.Reforecast),
			"Adj.":       cli.FormatMoney(md.NetTotal.Adjustments),
			"Counted":    cli.FormatMoney(tr.Counted),
			"Adjusted":   cli.FormatMoney(tr.Adjusted),
			"Variance":   cli.FormatVariance(tr.Variance),
		}

		for j, c := range cols {
			style := cell
			switch c.title {
			case "Mode":
				style = style.Foreground(t.ModeColor(tr.Mode))
			case "Variance":
				style = style.Foreground(t.VarianceColor(tr.Variance))
			}
			if selected {
				style = style.Background(selBg).Bold(true)
			}
			text := values[c.title]
			if j == 0 && selected {
				text = "▸" + text
			}
			b.WriteString(style.Render(alignCell(text, c.width, j > 1)))
			b.WriteString(style.Render(" "))
		}
		b.WriteString("\n")
	}

	table := components.ContentCard(fmt.Sprintf("%d by month", a.year), strings.TrimRight(b.String(), "\n"), cw)
	detail := a.renderMonthDetail(a.months.cursor, cw)
	return table + "\n" + detail
}

// renderMonthDetail shows the group and subgroup breakdown of one month.
func (a App) renderMonthDetail(idx, cw int) string {
	t := theme.Active
	md := a.snap.Months[idx]

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	groupStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	nameW := 28
	line := func(style lipgloss.Style, name string, tot model.Totals, variance decimal.Decimal) string {
		v := lipgloss.NewStyle().Foreground(t.VarianceColor(variance)).Background(t.Surface)
		return style.Render(fmt.Sprintf("%-*s", nameW, truncStr(name, nameW))) +
			value.Render(fmt.Sprintf("%12s %12s %12s ",
				cli.FormatMoney(tot.Budget), cli.FormatMoney(tot.Actual), cli.FormatMoney(tot.Reforecast))) +
			v.Render(fmt.Sprintf("%12s", cli.FormatVariance(variance)))
	}

	var b strings.Builder
	b.WriteString(label.Render(fmt.Sprintf("%-*s%12s %12s %12s %12s", nameW, "", "Budget", "Actual", "Reforecast", "Variance")))
	for _, g := range []model.GroupTotals{md.CostOfSales, md.Opex} {
		b.WriteString("\n" + line(groupStyle, g.Group.Label(), g.Totals, g.Variance))
		for _, sg := range g.Subgroups {
			b.WriteString("\n" + line(label, "  "+sg.Name, sg.Totals, sg.Variance))
		}
	}
	b.WriteString("\n" + line(groupStyle, "Net", md.NetTotal, md.NetTotal.Variance()))

	title := fmt.Sprintf("%s %d · %s", cli.FullMonthName(idx+1), a.year, a.snap.Tracking[idx].Mode)
	return components.ContentCard(title, b.String(), cw)
}

func alignCell(s string, w int, right bool) string {
	s = truncStr(s, w)
	if right {
		return fmt.Sprintf("%*s", w, s)
	}
	return fmt.Sprintf("%-*s", w, s)
}
