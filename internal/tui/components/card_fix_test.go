package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/bburn/internal/tui/theme"
)

func init() {
	// Force TrueColor so styled output carries ANSI codes in tests.
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(short, "\n"))
	tallLines := len(strings.Split(tall, "\n"))
	if shortLines >= tallLines {
		t.Fatal("setup: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tall, short}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes, padding is unstyled", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "A", 30)
	tall := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	lines := strings.Split(CardRow([]string{tall, short}), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{100, 3}, {81, 4}, {7, 7}, {10, 1}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if got := LayoutRow(10, 0); got != nil {
		t.Errorf("LayoutRow(10, 0) = %v, want nil", got)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	row := MetricCardRow([]Metric{
		{Label: "YTD Actual", Value: "$1,200"},
		{Label: "Variance", Value: "+$300", Note: "25.0%", ValueColor: theme.Active.Under},
		{Label: "Runway", Value: "∞"},
	}, 90)
	if w := lipgloss.Width(strings.Split(row, "\n")[0]); w != 90 {
		t.Errorf("row width = %d, want 90", w)
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")
	total := 0
	for i := range Tabs {
		total += TabVisualWidth(i, i == 0)
	}
	total += len(Tabs) - 1
	if got := lipgloss.Width(RenderTabBar(0, 0)); got != total {
		t.Errorf("tab bar width = %d, want %d", got, total)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('w'); got != 3 {
		t.Errorf("TabIdxByKey('w') = %d, want 3", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestColorForPct(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active
	cases := []struct {
		pct  float64
		want lipgloss.Color
	}{
		{0.2, th.Under},
		{0.8, th.Forecast},
		{0.95, th.Warn},
		{1.2, th.Over},
	}
	for _, tc := range cases {
		if got := ColorForPct(tc.pct); got != tc.want {
			t.Errorf("ColorForPct(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	got := Sparkline([]float64{3, 3, 3}, theme.Active.Accent)
	if !strings.Contains(got, "▅▅▅") {
		t.Errorf("flat sparkline = %q, want mid-height blocks", got)
	}
}

func TestColumnChartHeight(t *testing.T) {
	cols := []Column{
		{Label: "Jan", Value: 100, Marker: 120, Color: theme.Active.Final},
		{Label: "Feb", Value: 140, Marker: 120, Color: theme.Active.Forecast},
	}
	out := ColumnChart(cols, 40, 6)
	if got := len(strings.Split(out, "\n")); got != 8 {
		t.Errorf("chart lines = %d, want 8", got)
	}
	if !strings.Contains(out, "Jan") || !strings.Contains(out, "Feb") {
		t.Error("chart is missing month labels")
	}
}

func TestDivergingBarWidth(t *testing.T) {
	for _, v := range []float64{-50, 0, 30, 500} {
		if w := lipgloss.Width(DivergingBar(v, 100, 10)); w != 21 {
			t.Errorf("DivergingBar(%v) width = %d, want 21", v, w)
		}
	}
}
