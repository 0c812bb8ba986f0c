package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Mode is a month's Final/Forecast state.
type Mode int

// A month is Forecast until the operator marks it Final.
const (
	ModeForecast Mode = iota
	ModeFinal
)

func (m Mode) String() string {
	if m == ModeFinal {
		return "Final"
	}
	return "Forecast"
}

// YearMonth keys per-month state.
type YearMonth struct {
	Year  int
	Month int
}

// ForecastModes maps (year, month) to Final/Forecast. The zero value is usable
// and treats every month as Forecast. Values are immutable: With and Toggle
// return modified copies.
type ForecastModes struct {
	final map[YearMonth]bool
}

// NewForecastModes builds a ForecastModes from a (year, month) -> final map.
// The input is copied.
func NewForecastModes(final map[YearMonth]bool) ForecastModes {
	m := make(map[YearMonth]bool, len(final))
	for k, v := range final {
		if v {
			m[k] = true
		}
	}
	return ForecastModes{final: m}
}

// ForecastModesForYear is a convenience for a single year's month -> final flags.
func ForecastModesForYear(year int, months map[int]bool) ForecastModes {
	m := make(map[YearMonth]bool, len(months))
	for month, final := range months {
		m[YearMonth{Year: year, Month: month}] = final
	}
	return NewForecastModes(m)
}

// Mode returns the month's mode. Missing months are Forecast.
func (f ForecastModes) Mode(year, month int) Mode {
	if f.final[YearMonth{Year: year, Month: month}] {
		return ModeFinal
	}
	return ModeForecast
}

// IsFinal reports whether the month is closed.
func (f ForecastModes) IsFinal(year, month int) bool {
	return f.Mode(year, month) == ModeFinal
}

// With returns a copy with the month set to mode.
func (f ForecastModes) With(year, month int, mode Mode) ForecastModes {
	next := make(map[YearMonth]bool, len(f.final)+1)
	for k, v := range f.final {
		next[k] = v
	}
	key := YearMonth{Year: year, Month: month}
	if mode == ModeFinal {
		next[key] = true
	} else {
		delete(next, key)
	}
	return ForecastModes{final: next}
}

// Toggle returns a copy with the month's mode flipped.
func (f ForecastModes) Toggle(year, month int) ForecastModes {
	if f.IsFinal(year, month) {
		return f.With(year, month, ModeForecast)
	}
	return f.With(year, month, ModeFinal)
}

// FinalMonths returns the Final months of a year in ascending order.
func (f ForecastModes) FinalMonths(year int) []int {
	var months []int
	for k := range f.final {
		if k.Year == year {
			months = append(months, k.Month)
		}
	}
	sort.Ints(months)
	return months
}

// Entries returns every Final (year, month) pair sorted chronologically.
func (f ForecastModes) Entries() []YearMonth {
	out := make([]YearMonth, 0, len(f.final))
	for k := range f.final {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// YearlyTargets holds operator-set annual budget targets.
type YearlyTargets map[int]decimal.Decimal

// Target returns the target for year, if one has been set.
func (t YearlyTargets) Target(year int) (decimal.Decimal, bool) {
	v, ok := t[year]
	return v, ok
}
