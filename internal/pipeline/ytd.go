package pipeline

import (
	"github.com/theirongolddev/bburn/internal/model"
)

// LastMonthWithActuals returns the YTD cutoff for year: the latest month
// flagged Final, else the latest month with any positive actual or budget,
// else 0.
func LastMonthWithActuals(entries []model.Entry, modes model.ForecastModes, year int) int {
	for m := 12; m >= 1; m-- {
		if modes.IsFinal(year, m) {
			return m
		}
	}

	last := 0
	for _, e := range entries {
		if e.Year != year || !model.ValidMonth(e.Month) || e.Month <= last {
			continue
		}
		if e.ActualOrZero().IsPositive() || e.Budget.IsPositive() {
			last = e.Month
		}
	}
	return last
}

// AggregateYTD sums the monthly net totals for months 1 through the YTD
// cutoff. Later months are excluded even when they hold entries.
func AggregateYTD(entries []model.Entry, categories []model.Category, modes model.ForecastModes, year int) model.YTDData {
	yearEntries := FilterByYear(entries, year)
	last := LastMonthWithActuals(yearEntries, modes, year)

	ytd := model.YTDData{Year: year, LastMonthWithActuals: last}
	for m := 1; m <= last; m++ {
		md := AggregateMonth(yearEntries, categories, year, m)
		ytd.Totals = ytd.Totals.Add(md.NetTotal)
	}
	ytd.Variance = ytd.Totals.Variance()
	ytd.VariancePercent = ytd.Totals.VariancePercent()
	return ytd
}
