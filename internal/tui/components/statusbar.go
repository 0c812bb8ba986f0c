package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bburn/internal/tui/theme"
)

// StatusInfo is what the bottom bar reports.
type StatusInfo struct {
	Year        int
	DataAge     string
	Refreshing  bool
	AutoRefresh bool
	Message     string
}

// RenderStatusBar renders key hints on the left and data state on the right.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [q]uit  [ ]year ") + accent.Render(fmt.Sprintf("%d", info.Year))
	if info.Message != "" {
		left += base.Render("  ") + lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Render(info.Message)
	}

	var right []string
	switch {
	case info.Refreshing:
		right = append(right, "refreshing…")
	case info.DataAge != "":
		right = append(right, "data "+info.DataAge)
	}
	if info.AutoRefresh {
		right = append(right, "auto")
	}
	rightStr := base.Render(strings.Join(right, " · ") + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 0 {
		gap = 0
	}
	return left + base.Render(strings.Repeat(" ", gap)) + rightStr
}
