package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

const runwayWindow = 3

var maxRunway = decimal.NewFromInt(model.MaxRunwayMonths)

// RunwayInput feeds ProjectRunway. MonthlyActuals[i] is the spend of month i+1;
// months beyond LastMonthWithActuals are ignored.
type RunwayInput struct {
	AnnualBudget         decimal.Decimal
	MonthlyActuals       []decimal.Decimal
	LastMonthWithActuals int
}

// ProjectRunway extrapolates spend to year end from the average of the
// trailing up to three elapsed months.
func ProjectRunway(in RunwayInput) model.Runway {
	last := in.LastMonthWithActuals
	if last < 0 {
		last = 0
	}
	if last > 12 {
		last = 12
	}

	monthActual := func(m int) decimal.Decimal {
		if m-1 < len(in.MonthlyActuals) {
			return in.MonthlyActuals[m-1]
		}
		return decimal.Zero
	}

	r := model.Runway{
		AnnualBudget:         in.AnnualBudget,
		LastMonthWithActuals: last,
		RemainingMonths:      12 - last,
	}
	for m := 1; m <= last; m++ {
		r.YTDActual = r.YTDActual.Add(monthActual(m))
	}
	r.NetAvailable = in.AnnualBudget.Sub(r.YTDActual)

	window := runwayWindow
	if last < window {
		window = last
	}
	r.AverageWindowMonths = window
	if window > 0 {
		sum := decimal.Zero
		for m := last - window + 1; m <= last; m++ {
			sum = sum.Add(monthActual(m))
		}
		r.LastThreeMonthAverage = sum.Div(decimal.NewFromInt(int64(window)))
	}

	if r.LastThreeMonthAverage.IsZero() {
		r.ProjectedRemainingSpend = decimal.Zero
		r.Unconstrained = true
		r.RunwayMonths = maxRunway
	} else {
		r.ProjectedRemainingSpend = r.LastThreeMonthAverage.Mul(decimal.NewFromInt(int64(r.RemainingMonths)))
		r.RunwayMonths = runwayMonths(r.NetAvailable, r.LastThreeMonthAverage)
	}

	r.ProjectedTotalSpend = r.YTDActual.Add(r.ProjectedRemainingSpend)
	r.BudgetVsProjection = model.Variance(r.ProjectedTotalSpend, in.AnnualBudget)
	r.IsProjectedOverBudget = r.BudgetVsProjection.IsNegative()
	return r
}

// runwayMonths divides what is left by the monthly burn, floored at 0 and capped.
func runwayMonths(available, burn decimal.Decimal) decimal.Decimal {
	if !burn.IsPositive() {
		return maxRunway
	}
	months := available.Div(burn)
	if months.IsNegative() {
		return decimal.Zero
	}
	if months.GreaterThan(maxRunway) {
		return maxRunway
	}
	return months
}

// CompensationRunway projects the designated compensation categories for year.
// The annual budget is the sum of their budgets across all twelve months.
func CompensationRunway(entries []model.Entry, categories []model.Category, compensationIDs []string, modes model.ForecastModes, year int) model.Runway {
	comp := FilterByCategories(FilterByYear(entries, year), idsOf(CategoriesByID(categories, compensationIDs)))
	last := LastMonthWithActuals(FilterByYear(entries, year), modes, year)

	in := RunwayInput{
		MonthlyActuals:       make([]decimal.Decimal, 12),
		LastMonthWithActuals: last,
	}
	for _, e := range comp {
		if !model.ValidMonth(e.Month) {
			continue
		}
		in.AnnualBudget = in.AnnualBudget.Add(e.Budget)
		in.MonthlyActuals[e.Month-1] = in.MonthlyActuals[e.Month-1].Add(e.ActualOrZero())
	}
	return ProjectRunway(in)
}

func idsOf(categories []model.Category) []string {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}
