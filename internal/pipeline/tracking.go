package pipeline

import (
	"github.com/theirongolddev/bburn/internal/model"
)

// ResolveTracking turns a period's raw totals into its budget-tracking view.
//
// Final months count their actual; Forecast months count their reforecast.
// The counted figure is reported net of adjustments in its own field, the other
// field keeps its raw value. Budget and variance are always populated. This is
// the only place the Final/Forecast branch is taken; rollups call it instead of
// re-deriving the rule.
func ResolveTracking(net model.Totals, mode model.Mode) model.BudgetTracking {
	bt := model.BudgetTracking{
		Mode:       mode,
		Actual:     net.Actual,
		Budget:     net.Budget,
		Reforecast: net.Reforecast,
	}

	if mode == model.ModeFinal {
		bt.Counted = net.Actual
		bt.Adjusted = net.Actual.Sub(net.Adjustments)
		bt.Actual = bt.Adjusted
	} else {
		bt.Counted = net.Reforecast
		bt.Adjusted = net.Reforecast.Sub(net.Adjustments)
		bt.Reforecast = bt.Adjusted
	}

	bt.Variance = model.Variance(bt.Adjusted, bt.Budget)
	return bt
}

// ResolveMonth aggregates a month and resolves it with that month's mode.
func ResolveMonth(entries []model.Entry, categories []model.Category, modes model.ForecastModes, year, month int) (model.MonthlyData, model.BudgetTracking) {
	md := AggregateMonth(entries, categories, year, month)
	return md, ResolveTracking(md.NetTotal, modes.Mode(year, month))
}
