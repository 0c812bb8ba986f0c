package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestForecastModesImmutable(t *testing.T) {
	base := ForecastModesForYear(2025, map[int]bool{1: true})
	next := base.Toggle(2025, 2)

	if base.IsFinal(2025, 2) {
		t.Error("Toggle mutated the receiver")
	}
	if !next.IsFinal(2025, 2) || !next.IsFinal(2025, 1) {
		t.Errorf("next final months = %v, want [1 2]", next.FinalMonths(2025))
	}

	back := next.Toggle(2025, 1)
	if got := back.FinalMonths(2025); len(got) != 1 || got[0] != 2 {
		t.Errorf("FinalMonths = %v, want [2]", got)
	}
}

func TestForecastModesZeroValue(t *testing.T) {
	var modes ForecastModes
	if modes.Mode(2025, 6) != ModeForecast {
		t.Error("zero value Mode != Forecast")
	}
	if got := modes.With(2025, 6, ModeFinal).Mode(2025, 6); got != ModeFinal {
		t.Errorf("With(Final).Mode = %v, want Final", got)
	}
}

func TestNewForecastModesCopiesInput(t *testing.T) {
	src := map[YearMonth]bool{{Year: 2025, Month: 3}: true}
	modes := NewForecastModes(src)
	src[YearMonth{Year: 2025, Month: 4}] = true

	if modes.IsFinal(2025, 4) {
		t.Error("modes observed a later write to the source map")
	}
	if got := modes.Entries(); len(got) != 1 {
		t.Errorf("Entries() = %v, want one entry", got)
	}
}

func TestEntryIsEmpty(t *testing.T) {
	e := NewEntry("rent", 2025, 1)
	if !e.IsEmpty() {
		t.Error("new entry is not empty")
	}
	e.Notes = "  "
	if !e.IsEmpty() {
		t.Error("whitespace notes made entry non-empty")
	}
	e.Actual = Amount(decimal.Zero)
	if e.IsEmpty() {
		t.Error("recorded zero actual counts as empty")
	}
}

func TestQuarterOf(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 3: 1, 4: 2, 9: 3, 12: 4, 13: 0}
	for month, want := range tests {
		if got := QuarterOf(month); got != want {
			t.Errorf("QuarterOf(%d) = %d, want %d", month, got, want)
		}
	}
}

func TestVariancePercentZeroBudget(t *testing.T) {
	if got := VariancePercent(decimal.NewFromInt(-50), decimal.Zero); !got.IsZero() {
		t.Errorf("VariancePercent(budget 0) = %s, want 0", got)
	}
}

func TestParseGroup(t *testing.T) {
	if g, err := ParseGroup("opex"); err != nil || g != GroupOpex {
		t.Errorf("ParseGroup(opex) = %q, %v", g, err)
	}
	if _, err := ParseGroup("capex"); err == nil {
		t.Error("ParseGroup(capex) error = nil, want error")
	}
}
