package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// ComputeKPIs assembles the headline bundle for year. When no yearly target is
// set the annual target falls back to the sum of the year's budgets.
func ComputeKPIs(
	entries []model.Entry,
	categories []model.Category,
	modes model.ForecastModes,
	targets model.YearlyTargets,
	year int,
) model.KPIs {
	known := KnownEntries(FilterByYear(entries, year), categories)
	ytd := AggregateYTD(known, categories, modes, year)
	forecast := ComputeFullYearForecast(known, categories, modes, year)

	k := model.KPIs{
		Year:                 year,
		YTDActual:            ytd.Totals.Actual,
		YTDBudget:            ytd.Totals.Budget,
		Variance:             ytd.Variance,
		VariancePercent:      ytd.VariancePercent,
		FullYearForecast:     forecast,
		LastMonthWithActuals: ytd.LastMonthWithActuals,
		MonthsRemaining:      12 - ytd.LastMonthWithActuals,
		VarianceTrend:        ClassifyTrend(known, year, ytd.LastMonthWithActuals),
	}

	if target, ok := targets.Target(year); ok {
		k.AnnualBudgetTarget = target
		k.TargetIsSet = true
	} else {
		for _, e := range known {
			k.AnnualBudgetTarget = k.AnnualBudgetTarget.Add(e.Budget)
		}
	}

	k.BudgetUtilization = model.Percent(k.YTDActual, k.AnnualBudgetTarget)
	k.TargetAchievement = model.Percent(k.FullYearForecast, k.AnnualBudgetTarget)
	k.ForecastVsTargetVariance = model.Variance(k.FullYearForecast, k.AnnualBudgetTarget)

	if ytd.LastMonthWithActuals > 0 {
		k.BurnRate = k.YTDActual.Div(decimal.NewFromInt(int64(ytd.LastMonthWithActuals)))
	}
	if k.BurnRate.IsPositive() {
		k.RunwayMonths = runwayMonths(k.AnnualBudgetTarget.Sub(k.YTDActual), k.BurnRate)
	} else {
		k.RunwayMonths = maxRunway
		k.RunwayUnconstrained = true
	}
	return k
}

// KnownEntries drops entries whose category is not configured, matching what
// the rollup aggregator counts.
func KnownEntries(entries []model.Entry, categories []model.Category) []model.Entry {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}
	var result []model.Entry
	for _, e := range entries {
		if _, ok := known[e.CategoryID]; ok {
			result = append(result, e)
		}
	}
	return result
}
