package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/cli"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

// TargetSavedMsg reports a persisted yearly target change.
type TargetSavedMsg struct {
	Status string
	Err    error
}

// targetState tracks the inline annual target editor.
type targetState struct {
	editing bool
	input   textinput.Model
	err     string
}

func newTargetInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "1,200,000 (leave empty to clear)"
	ti.CharLimit = 32
	ti.Width = 32
	ti.Prompt = "$ "
	return ti
}

func (a App) startTargetEdit() (tea.Model, tea.Cmd) {
	ti := newTargetInput()
	if a.snap.KPIs.TargetIsSet {
		ti.SetValue(a.snap.KPIs.AnnualBudgetTarget.StringFixed(2))
	}
	ti.Focus()
	a.target = targetState{editing: true, input: ti}
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateTargetInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.target.editing = false
		return a, nil
	case "enter":
		val := strings.TrimSpace(a.target.input.Value())
		if val == "" {
			a.target.editing = false
			return a, clearTargetCmd(a.store, a.year)
		}
		amount, err := source.ParseAmount(val)
		if err == nil && amount.IsNegative() {
			err = errors.New("target cannot be negative")
		}
		if err != nil {
			a.target.err = err.Error()
			return a, nil
		}
		a.target.editing = false
		return a, setTargetCmd(a.store, a.year, amount)
	}

	a.target.err = ""
	var cmd tea.Cmd
	a.target.input, cmd = a.target.input.Update(msg)
	return a, cmd
}

func (a App) renderTargetEditor(cw int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	current := "not set, using the sum of " + fmt.Sprint(a.year) + " budgets: " +
		cli.FormatMoney(a.snap.KPIs.AnnualBudgetTarget)
	if a.snap.KPIs.TargetIsSet {
		current = cli.FormatMoney(a.snap.KPIs.AnnualBudgetTarget)
	}

	var b strings.Builder
	b.WriteString(label.Render("Current: " + current))
	b.WriteString("\n\n")
	b.WriteString(a.target.input.View())
	b.WriteString("\n\n")
	if a.target.err != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface).Render(a.target.err))
		b.WriteString("\n")
	}
	b.WriteString(hint.Render("[Enter] save  [Esc] cancel"))

	return components.ContentCard(fmt.Sprintf("Annual Target %d", a.year), b.String(), min(cw, 72))
}

func setTargetCmd(st Store, year int, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := st.SetYearlyTarget(ctx, year, amount); err != nil {
			return TargetSavedMsg{Err: err}
		}
		return TargetSavedMsg{Status: fmt.Sprintf("%d target set to %s", year, cli.FormatMoney(amount))}
	}
}

func clearTargetCmd(st Store, year int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := st.ClearYearlyTarget(ctx, year); err != nil {
			return TargetSavedMsg{Err: err}
		}
		return TargetSavedMsg{Status: fmt.Sprintf("%d target cleared", year)}
	}
}
