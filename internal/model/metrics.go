package model

import "github.com/shopspring/decimal"

var (
	hundred  = decimal.NewFromInt(100)
	minusOne = decimal.NewFromInt(-1)
)

// Variance applies the sign convention used everywhere: (actual - budget) * -1.
// Positive means under budget.
func Variance(actual, budget decimal.Decimal) decimal.Decimal {
	return actual.Sub(budget).Mul(minusOne)
}

// VariancePercent is variance / budget * 100, or 0 when budget is 0.
func VariancePercent(variance, budget decimal.Decimal) decimal.Decimal {
	if budget.IsZero() {
		return decimal.Zero
	}
	return variance.Div(budget).Mul(hundred)
}

// Percent returns part / whole * 100, or 0 when whole is 0.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Totals is the four-field shape every rollup level shares.
type Totals struct {
	Budget      decimal.Decimal
	Actual      decimal.Decimal
	Reforecast  decimal.Decimal
	Adjustments decimal.Decimal
}

// Add returns the field-by-field sum.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Budget:      t.Budget.Add(o.Budget),
		Actual:      t.Actual.Add(o.Actual),
		Reforecast:  t.Reforecast.Add(o.Reforecast),
		Adjustments: t.Adjustments.Add(o.Adjustments),
	}
}

// Variance of raw actual against budget.
func (t Totals) Variance() decimal.Decimal {
	return Variance(t.Actual, t.Budget)
}

// VariancePercent of raw actual against budget.
func (t Totals) VariancePercent() decimal.Decimal {
	return VariancePercent(t.Variance(), t.Budget)
}

// Equal compares all four fields numerically.
func (t Totals) Equal(o Totals) bool {
	return t.Budget.Equal(o.Budget) &&
		t.Actual.Equal(o.Actual) &&
		t.Reforecast.Equal(o.Reforecast) &&
		t.Adjustments.Equal(o.Adjustments)
}

// CategorySummary is one category's totals for a period.
type CategorySummary struct {
	Category        Category
	Totals          Totals
	Variance        decimal.Decimal
	VariancePercent decimal.Decimal
}

// SubgroupTotals sums the categories of one subgroup within a group.
type SubgroupTotals struct {
	Name            string
	Categories      []CategorySummary
	Totals          Totals
	Variance        decimal.Decimal
	VariancePercent decimal.Decimal
}

// GroupTotals sums the subgroups of a parent bucket.
type GroupTotals struct {
	Group           Group
	Subgroups       []SubgroupTotals
	Totals          Totals
	Variance        decimal.Decimal
	VariancePercent decimal.Decimal
}

// MonthlyData is the full rollup for one (year, month).
type MonthlyData struct {
	Year        int
	Month       int
	CostOfSales GroupTotals
	Opex        GroupTotals
	NetTotal    Totals
}

// BudgetTracking is the resolved view of a period: one counted figure chosen
// by the month's mode, netted against adjustments.
type BudgetTracking struct {
	Mode       Mode
	Actual     decimal.Decimal
	Budget     decimal.Decimal
	Reforecast decimal.Decimal
	Variance   decimal.Decimal

	// Counted is the raw figure selected by Mode; Adjusted is Counted less adjustments.
	Counted  decimal.Decimal
	Adjusted decimal.Decimal
}

// QuarterlySummary rolls three resolved months into a quarter.
type QuarterlySummary struct {
	Year     int
	Quarter  int
	Months   [3]MonthlyData
	Tracking BudgetTracking
	AllFinal bool

	// ForecastContribution is what this quarter adds to the full-year forecast.
	ForecastContribution decimal.Decimal
}

// YTDData aggregates months 1..LastMonthWithActuals.
type YTDData struct {
	Year                 int
	Totals               Totals
	Variance             decimal.Decimal
	VariancePercent      decimal.Decimal
	LastMonthWithActuals int
}
