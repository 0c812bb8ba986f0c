package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/store"
)

type fakeStore struct {
	data    store.Data
	modes   map[int]model.Mode
	target  *decimal.Decimal
	cleared bool
	loads   int
}

func (f *fakeStore) LoadData(_ context.Context, year int) (store.Data, error) {
	f.loads++
	final := make(map[int]bool)
	for m, mode := range f.modes {
		final[m] = mode == model.ModeFinal
	}
	d := f.data
	d.Modes = model.ForecastModesForYear(year, final)
	if f.target != nil {
		d.Targets = model.YearlyTargets{year: *f.target}
	}
	return d, nil
}

func (f *fakeStore) SetForecastMode(_ context.Context, _, month int, mode model.Mode) error {
	if f.modes == nil {
		f.modes = make(map[int]model.Mode)
	}
	f.modes[month] = mode
	return nil
}

func (f *fakeStore) SetYearlyTarget(_ context.Context, _ int, amount decimal.Decimal) error {
	f.target = &amount
	return nil
}

func (f *fakeStore) ClearYearlyTarget(context.Context, int) error {
	f.target = nil
	f.cleared = true
	return nil
}

var testCategories = []model.Category{
	{ID: "rent", Name: "Rent", Group: model.GroupOpex, Subgroup: model.SubgroupOther},
	{ID: "salaries", Name: "Salaries", Group: model.GroupOpex, Subgroup: model.SubgroupCompensation},
}

func rentEntry(month int, budget, actual int64) model.Entry {
	e := model.NewEntry("rent", 2025, month)
	e.Budget = decimal.NewFromInt(budget)
	e.Actual = model.Amount(decimal.NewFromInt(actual))
	return e
}

func newTestApp(t *testing.T, fs *fakeStore) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a := NewApp(fs, Options{
		Year:            2025,
		Categories:      testCategories,
		CompensationIDs: []string{"salaries"},
		Config:          config.DefaultConfig(),
	})
	msg := loadDataCmd(fs, a.input())()
	m, _ := a.Update(msg)
	m, _ = m.(App).Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

// drain runs cmd and feeds each resulting message back until no command is left.
func drain(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	for i := 0; cmd != nil && i < 5; i++ {
		msg := cmd()
		if _, ok := msg.(tea.BatchMsg); ok {
			t.Fatal("drain does not handle batched commands")
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestDataLoadComputesSnapshot(t *testing.T) {
	fs := &fakeStore{data: store.Data{Entries: []model.Entry{
		rentEntry(1, 100, 90),
		rentEntry(2, 100, 120),
	}}}
	a := newTestApp(t, fs)

	if !a.loaded {
		t.Fatal("app not marked loaded")
	}
	if got := a.snap.KPIs.YTDActual; !got.Equal(decimal.NewFromInt(210)) {
		t.Errorf("YTDActual = %s, want 210", got)
	}
	if got := a.snap.KPIs.Variance; !got.Equal(decimal.NewFromInt(-10)) {
		t.Errorf("Variance = %s, want -10", got)
	}
	if !strings.Contains(a.View(), "YTD Actual") {
		t.Error("overview does not show the YTD card")
	}
}

func TestSpaceTogglesSelectedMonth(t *testing.T) {
	fs := &fakeStore{data: store.Data{Entries: []model.Entry{rentEntry(1, 100, 90)}}}
	a := newTestApp(t, fs)

	a, _ = press(t, a, "m", "j")
	if a.activeTab != tabMonths || a.months.month() != 2 {
		t.Fatalf("tab=%d month=%d, want Months tab at February", a.activeTab, a.months.month())
	}

	a, cmd := press(t, a, "space")
	a = drain(t, a, cmd)
	if fs.modes[2] != model.ModeFinal {
		t.Fatalf("stored mode for Feb = %v, want Final", fs.modes[2])
	}
	if a.snap.Tracking[1].Mode != model.ModeFinal {
		t.Errorf("snapshot mode for Feb = %v, want Final after reload", a.snap.Tracking[1].Mode)
	}

	a, cmd = press(t, a, "space")
	a = drain(t, a, cmd)
	if fs.modes[2] != model.ModeForecast {
		t.Errorf("stored mode for Feb = %v, want Forecast after second toggle", fs.modes[2])
	}
	if a.snap.Tracking[1].Mode != model.ModeForecast {
		t.Errorf("snapshot mode for Feb = %v, want Forecast", a.snap.Tracking[1].Mode)
	}
}

func TestMonthCursorClamps(t *testing.T) {
	var m monthsState
	m.moveCursor(-3)
	if m.month() != 1 {
		t.Errorf("month = %d, want 1", m.month())
	}
	m.moveCursor(40)
	if m.month() != 12 {
		t.Errorf("month = %d, want 12", m.month())
	}
}

func TestYearKeysReload(t *testing.T) {
	fs := &fakeStore{}
	a := newTestApp(t, fs)
	before := fs.loads

	a, cmd := press(t, a, "]")
	a = drain(t, a, cmd)
	if a.year != 2026 || a.snap.Year != 2026 {
		t.Errorf("year = %d, snapshot year = %d, want 2026", a.year, a.snap.Year)
	}
	if fs.loads != before+1 {
		t.Errorf("loads = %d, want %d", fs.loads, before+1)
	}
}

func TestTargetEditSavesAndClears(t *testing.T) {
	fs := &fakeStore{data: store.Data{Entries: []model.Entry{rentEntry(1, 100, 90)}}}
	a := newTestApp(t, fs)

	a, _ = press(t, a, "t")
	if !a.target.editing {
		t.Fatal("target editor not open")
	}
	a, _ = press(t, a, "1", ",", "5", "0", "0")
	a, cmd := press(t, a, "enter")
	a = drain(t, a, cmd)

	if fs.target == nil || !fs.target.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("stored target = %v, want 1500", fs.target)
	}
	if !a.snap.KPIs.TargetIsSet || !a.snap.KPIs.AnnualBudgetTarget.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("KPI target = %s (set=%v), want 1500", a.snap.KPIs.AnnualBudgetTarget, a.snap.KPIs.TargetIsSet)
	}

	a, _ = press(t, a, "t")
	a.target.input.SetValue("")
	a, cmd = press(t, a, "enter")
	a = drain(t, a, cmd)
	if !fs.cleared || a.snap.KPIs.TargetIsSet {
		t.Errorf("cleared=%v TargetIsSet=%v, want target cleared", fs.cleared, a.snap.KPIs.TargetIsSet)
	}
}

func TestTargetEditRejectsNegative(t *testing.T) {
	fs := &fakeStore{}
	a := newTestApp(t, fs)

	a, _ = press(t, a, "t")
	a.target.input.SetValue("-20")
	a, cmd := press(t, a, "enter")
	if cmd != nil {
		t.Error("negative target should not issue a save")
	}
	if !a.target.editing || a.target.err == "" {
		t.Errorf("editing=%v err=%q, want editor kept open with an error", a.target.editing, a.target.err)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	fs := &fakeStore{data: store.Data{Entries: []model.Entry{rentEntry(1, 100, 90)}}}
	a := newTestApp(t, fs)

	wants := []string{"Annual Target", "by month", "Quarterly Variance", "Compensation Runway"}
	for i, want := range wants {
		a.activeTab = i
		if out := a.View(); !strings.Contains(out, want) {
			t.Errorf("tab %d view missing %q", i, want)
		}
	}
}
