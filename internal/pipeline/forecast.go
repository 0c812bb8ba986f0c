package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// QuarterMonths returns the three month numbers of quarter q (1-4).
func QuarterMonths(q int) [3]int {
	first := (q-1)*3 + 1
	return [3]int{first, first + 1, first + 2}
}

// SummarizeQuarter resolves each month with its own mode and accumulates:
// actuals from Final months, reforecasts from Forecast months, budget and
// variance from all three. Once every month is Final the quarter contributes
// only its actuals to the full-year forecast, so leftover reforecast figures
// are never double counted.
func SummarizeQuarter(year, quarter int, months [3]model.MonthlyData, modes model.ForecastModes) model.QuarterlySummary {
	qs := model.QuarterlySummary{
		Year:     year,
		Quarter:  quarter,
		Months:   months,
		AllFinal: true,
	}

	var actual, reforecast, budget, variance decimal.Decimal
	for _, md := range months {
		mode := modes.Mode(year, md.Month)
		resolved := ResolveTracking(md.NetTotal, mode)

		if mode == model.ModeFinal {
			actual = actual.Add(resolved.Actual)
		} else {
			reforecast = reforecast.Add(resolved.Reforecast)
			qs.AllFinal = false
		}
		budget = budget.Add(resolved.Budget)
		variance = variance.Add(resolved.Variance)
	}

	if qs.AllFinal {
		reforecast = decimal.Zero
	}

	qs.Tracking = model.BudgetTracking{
		Actual:     actual,
		Budget:     budget,
		Reforecast: reforecast,
		Variance:   variance,
		Counted:    actual.Add(reforecast),
		Adjusted:   actual.Add(reforecast),
	}
	if qs.AllFinal {
		qs.Tracking.Mode = model.ModeFinal
	}
	qs.ForecastContribution = actual.Add(reforecast)
	return qs
}

// ForecastYear summarizes all four quarters of year.
func ForecastYear(entries []model.Entry, categories []model.Category, modes model.ForecastModes, year int) [4]model.QuarterlySummary {
	months := AggregateYear(entries, categories, year)

	var quarters [4]model.QuarterlySummary
	for q := 1; q <= 4; q++ {
		var qm [3]model.MonthlyData
		for i, m := range QuarterMonths(q) {
			qm[i] = months[m-1]
		}
		quarters[q-1] = SummarizeQuarter(year, q, qm, modes)
	}
	return quarters
}

// ComputeFullYearForecast is the single source of the full-year forecast
// total: the sum of each quarter's forecast contribution.
func ComputeFullYearForecast(entries []model.Entry, categories []model.Category, modes model.ForecastModes, year int) decimal.Decimal {
	return SumContributions(ForecastYear(entries, categories, modes, year))
}

// SumContributions adds up quarter contributions.
func SumContributions(quarters [4]model.QuarterlySummary) decimal.Decimal {
	total := decimal.Zero
	for _, q := range quarters {
		total = total.Add(q.ForecastContribution)
	}
	return total
}
