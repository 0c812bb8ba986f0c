// Package tui provides the interactive Bubble Tea dashboard for bburn.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/store"
	"github.com/theirongolddev/bburn/internal/tui/components"
	"github.com/theirongolddev/bburn/internal/tui/theme"
)

// Store is the persistence the dashboard reads from and writes mode and
// target changes to.
type Store interface {
	LoadData(ctx context.Context, year int) (store.Data, error)
	SetForecastMode(ctx context.Context, year, month int, mode model.Mode) error
	SetYearlyTarget(ctx context.Context, year int, amount decimal.Decimal) error
	ClearYearlyTarget(ctx context.Context, year int) error
}

// Options configures a new App.
type Options struct {
	Year            int
	Categories      []model.Category
	CompensationIDs []string
	Config          config.Config
	NeedSetup       bool
	Logger          *log.Logger
}

// DataLoadedMsg is sent when the first snapshot is computed.
type DataLoadedMsg struct {
	Snapshot pipeline.Snapshot
	LoadTime time.Duration
	Err      error
}

// RefreshDataMsg is sent when a background reload completes.
type RefreshDataMsg struct {
	Snapshot pipeline.Snapshot
	LoadTime time.Duration
	Err      error
}

// ModeSavedMsg reports a persisted forecast mode change.
type ModeSavedMsg struct {
	Year  int
	Month int
	Mode  model.Mode
	Err   error
}

// App is the root Bubble Tea model.
type App struct {
	store      Store
	cfg        config.Config
	categories []model.Category
	compIDs    []string
	logger     *log.Logger

	year     int
	snap     pipeline.Snapshot
	loaded   bool
	loadTime time.Duration
	loadErr  error

	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	width     int
	height    int
	activeTab int
	showHelp  bool
	message   string

	months monthsState
	target targetState

	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	minRefreshInterval = 10 * time.Second
	loadTimeout        = 10 * time.Second
)

// NewApp creates the dashboard model.
func NewApp(st Store, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	interval := time.Duration(opts.Config.TUI.RefreshIntervalSec) * time.Second
	if interval < minRefreshInterval {
		interval = 30 * time.Second
	}

	return App{
		store:           st,
		cfg:             opts.Config,
		categories:      opts.Categories,
		compIDs:         opts.CompensationIDs,
		logger:          logger,
		year:            opts.Year,
		needSetup:       opts.NeedSetup,
		autoRefresh:     opts.Config.TUI.AutoRefresh,
		refreshInterval: interval,
		spinner:         sp,
		target:          targetState{input: newTargetInput()},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.store, a.input()),
		a.spinner.Tick,
		tickCmd(),
	)
}

// input describes what the engine should compute for the current year.
func (a App) input() pipeline.Input {
	return pipeline.Input{
		Categories:      a.categories,
		CompensationIDs: a.compIDs,
		Year:            a.year,
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.applySnapshot(msg.Snapshot, msg.LoadTime, msg.Err)

		if a.needSetup {
			vals := newSetupValues(a.cfg, a.year)
			a.setupVals = &vals
			a.setupForm = newSetupForm(a.categories, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.applySnapshot(msg.Snapshot, msg.LoadTime, msg.Err)
		return a, nil

	case ModeSavedMsg:
		if msg.Err != nil {
			a.message = "mode not saved: " + msg.Err.Error()
			return a, nil
		}
		a.message = fmt.Sprintf("%s %d marked %s", monthAbbr(msg.Month), msg.Year, msg.Mode)
		a.refreshing = true
		return a, refreshDataCmd(a.store, a.input())

	case TargetSavedMsg:
		if msg.Err != nil {
			a.message = "target not saved: " + msg.Err.Error()
			return a, nil
		}
		a.message = msg.Status
		a.refreshing = true
		return a, refreshDataCmd(a.store, a.input())

	case spinner.TickMsg:
		if !a.loaded || a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && time.Since(a.lastRefresh) >= a.refreshInterval {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd(a.store, a.input()))
		}
		return a, tea.Batch(cmds...)
	}

	// Cursor blinks and similar messages go to whichever input is active.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.target.editing {
		var cmd tea.Cmd
		a.target.input, cmd = a.target.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) applySnapshot(snap pipeline.Snapshot, took time.Duration, err error) {
	a.lastRefresh = time.Now()
	a.loadErr = err
	if err != nil {
		a.logger.Error("loading snapshot", log.FieldYear, a.year, log.FieldError, err)
		return
	}
	a.snap = snap
	a.loadTime = took
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.target.editing {
		return a.updateTargetInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	a.message = ""

	if a.activeTab == tabMonths {
		if m, cmd, ok := a.updateMonthsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(refreshDataCmd(a.store, a.input()), a.spinner.Tick)
		}
		return a, nil
	case "R":
		a.autoRefresh = !a.autoRefresh
		a.cfg.TUI.AutoRefresh = a.autoRefresh
		if err := config.Save(a.cfg); err != nil {
			a.message = "config not saved: " + err.Error()
		}
		return a, nil
	case "t":
		return a.startTargetEdit()
	case "[", "]":
		if key == "[" {
			a.year--
		} else {
			a.year++
		}
		a.refreshing = true
		return a, refreshDataCmd(a.store, a.input())
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if runes := []rune(key); len(runes) == 1 {
		if idx := components.TabIdxByKey(runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || a.target.editing || (a.needSetup && a.setupForm != nil) {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabMonths {
			a.months.moveCursor(-1)
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabMonths {
			a.months.moveCursor(1)
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionRelease && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.message = "setup not saved: " + err.Error()
		}
		a.needSetup = false
		a.setupForm = nil
		a.refreshing = true
		return a, refreshDataCmd(a.store, a.input())
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	switch {
	case a.width == 0:
		return ""
	case a.width < minTerminalWidth:
		return a.viewTooNarrow()
	case !a.loaded:
		return a.viewLoading()
	case a.needSetup && a.setupForm != nil:
		return a.setupForm.View()
	case a.showHelp:
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  bburn needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logo.Render("◈ bburn") + sub.Render(" · Budget Burn") + "\n\n" +
		a.spinner.View() + sub.Render(fmt.Sprintf(" Loading %d ledger...", a.year))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	section := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	type binding struct{ key, desc string }
	sections := []struct {
		name     string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o m q w", "Jump to tab"},
			{"← →", "Previous / next tab"},
			{"[ ]", "Previous / next year"},
			{"j k", "Move month cursor"},
		}},
		{"Actions", []binding{
			{"space", "Toggle month Final / Forecast"},
			{"f F", "Mark month Final / Forecast"},
			{"t", "Edit annual target"},
			{"r", "Refresh data"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(title.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n" + section.Render(s.name) + "\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", bind.key)), desc.Render(bind.desc))
		}
	}
	b.WriteString("\n" + dim.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)

	status := components.RenderStatusBar(w, components.StatusInfo{
		Year:        a.year,
		DataAge:     a.dataAge(),
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
		Message:     a.message,
	})

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(status), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = components.ContentCard("Error", a.loadErr.Error(), cw)
	case a.target.editing:
		content = a.renderTargetEditor(cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabMonths:
			content = a.renderMonthsTab(cw)
		case tabQuarters:
			content = a.renderQuartersTab(cw)
		case tabRunway:
			content = a.renderRunwayTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	out := lipgloss.JoinVertical(lipgloss.Left, header, content, status)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, out,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) dataAge() string {
	if a.lastRefresh.IsZero() {
		return ""
	}
	age := time.Since(a.lastRefresh).Round(time.Second)
	if age < time.Second {
		return "just now"
	}
	return age.String() + " ago"
}

// ─── Commands ───────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// computeSnapshot loads the year's ledger and runs the engine over it.
func computeSnapshot(st Store, in pipeline.Input) (pipeline.Snapshot, time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	start := time.Now()
	data, err := st.LoadData(ctx, in.Year)
	if err != nil {
		return pipeline.Snapshot{}, 0, err
	}
	in.Entries = data.Entries
	in.Modes = data.Modes
	in.Targets = data.Targets
	return pipeline.Compute(in), time.Since(start), nil
}

func loadDataCmd(st Store, in pipeline.Input) tea.Cmd {
	return func() tea.Msg {
		snap, took, err := computeSnapshot(st, in)
		return DataLoadedMsg{Snapshot: snap, LoadTime: took, Err: err}
	}
}

func refreshDataCmd(st Store, in pipeline.Input) tea.Cmd {
	return func() tea.Msg {
		snap, took, err := computeSnapshot(st, in)
		return RefreshDataMsg{Snapshot: snap, LoadTime: took, Err: err}
	}
}

func setModeCmd(st Store, year, month int, mode model.Mode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		err := st.SetForecastMode(ctx, year, month, mode)
		return ModeSavedMsg{Year: year, Month: month, Mode: mode, Err: err}
	}
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	n := strings.Count(s, "\n") + 1
	if n >= h {
		return s
	}
	return s + strings.Repeat("\n", h-n)
}

// fillLinesWithBackground pads every line to w so gaps keep the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab under column x, or -1.
// Hitboxes follow the widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i := range components.Tabs {
		tabW := components.TabVisualWidth(i, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}
