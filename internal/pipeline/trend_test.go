package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

func series(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = d(v)
	}
	return out
}

func TestClassifyVarianceSeries(t *testing.T) {
	tests := []struct {
		name string
		pcts []decimal.Decimal
		want model.Trend
	}{
		{"improving", series("-8", "-3"), model.TrendImproving},
		{"flat small", series("-3", "-3"), model.TrendStable},
		{"worsening", series("2", "-14"), model.TrendWorsening},
		{"flat large under", series("15", "16"), model.TrendUnderBudget},
		{"flat large over", series("-20", "-21"), model.TrendOverBudget},
		{"change exactly 2", series("0", "2"), model.TrendStable},
		{"single small", series("4.9"), model.TrendStable},
		{"single under", series("5"), model.TrendUnderBudget},
		{"single over", series("-7"), model.TrendOverBudget},
		{"empty", nil, model.TrendStable},
		{"uses last two", series("-30", "-8", "-3"), model.TrendImproving},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyVarianceSeries(tt.pcts); got != tt.want {
				t.Errorf("ClassifyVarianceSeries(%v) = %q, want %q", tt.pcts, got, tt.want)
			}
		})
	}
}

func TestCumulativeVariancePercents(t *testing.T) {
	entries := []model.Entry{
		entry("rent", 2025, 1, "100", "120", "", ""),
		entry("rent", 2025, 2, "100", "80", "", ""),
		entry("rent", 2025, 3, "100", "100", "", ""),
		entry("rent", 2025, 4, "100", "60", "", ""),
	}

	got := CumulativeVariancePercents(entries, 2025, 4)
	want := []string{"0", "0", "10"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		assertDecimal(t, "pct", got[i], want[i])
	}

	if got := CumulativeVariancePercents(entries, 2025, 1); len(got) != 1 {
		t.Errorf("through 1: len = %d, want 1", len(got))
	}
	if got := CumulativeVariancePercents(entries, 2025, 0); got != nil {
		t.Errorf("through 0 = %v, want nil", got)
	}
}

func TestClassifyTrend(t *testing.T) {
	// Cumulative: Jan -20%, Feb -8%.
	entries := []model.Entry{
		entry("rent", 2025, 1, "100", "120", "", ""),
		entry("rent", 2025, 2, "150", "150", "", ""),
	}
	if got := ClassifyTrend(entries, 2025, 2); got != model.TrendImproving {
		t.Errorf("ClassifyTrend() = %q, want Improving", got)
	}
}

func TestTrendSeries(t *testing.T) {
	entries := []model.Entry{
		entry("rent", 2025, 1, "100", "120", "", ""),
		entry("rent", 2025, 3, "100", "80", "", ""),
	}
	points := TrendSeries(entries, 2025, 3)
	if len(points) != 3 {
		t.Fatalf("len = %d, want 3", len(points))
	}
	assertDecimal(t, "Jan", points[0].VariancePercent, "-20")
	assertDecimal(t, "Feb", points[1].VariancePercent, "-20")
	assertDecimal(t, "Mar", points[2].VariancePercent, "0")
}
