package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bburn/internal/tui/theme"
)

// Tab is one dashboard view.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // index of Key within Name, or -1
}

// Tabs lists the dashboard views in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Months", Key: 'm', KeyPos: 0},
	{Name: "Quarters", Key: 'q', KeyPos: 0},
	{Name: "Runway", Key: 'w', KeyPos: 3},
}

// tabPad is the horizontal padding on each side of a tab label.
const tabPad = 1

// TabVisualWidth returns the rendered width of tab idx.
// A shortcut key outside the name is rendered as a "[k]" suffix.
func TabVisualWidth(idx int, active bool) int {
	tab := Tabs[idx]
	w := lipgloss.Width(tab.Name) + 2*tabPad
	if !active && tab.KeyPos < 0 {
		w += 3
	}
	return w
}

// RenderTabBar renders all tabs on one row, separated by a single space.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, tabPad)
	inactive := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)
	pad := inactive.Render(strings.Repeat(" ", tabPad))

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = activeStyle.Render(tab.Name)
			continue
		}
		var label string
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			label = inactive.Render(tab.Name[:tab.KeyPos]) +
				key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
				inactive.Render(tab.Name[tab.KeyPos+1:])
		} else {
			label = inactive.Render(tab.Name) + key.Render("["+string(tab.Key)+"]")
		}
		parts[i] = pad + label + pad
	}

	sep := lipgloss.NewStyle().Background(t.Background).Render(" ")
	row := strings.Join(parts, sep)
	if gap := width - lipgloss.Width(row); gap > 0 {
		row += lipgloss.NewStyle().Background(t.Background).Render(strings.Repeat(" ", gap))
	}
	return row
}

// TabIdxByKey returns the tab bound to key, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
