package model

import "github.com/shopspring/decimal"

// Trend labels recent variance direction.
type Trend string

// TrendPoint is the cumulative variance percent from January through Month.
type TrendPoint struct {
	Month           int
	VariancePercent decimal.Decimal
}

// Trend labels.
const (
	TrendImproving   Trend = "Improving"
	TrendWorsening   Trend = "Worsening"
	TrendStable      Trend = "Stable"
	TrendUnderBudget Trend = "Under Budget"
	TrendOverBudget  Trend = "Over Budget"
)

// MaxRunwayMonths caps runway when there is no burn to divide by.
const MaxRunwayMonths = 999

// KPIs is the headline bundle for one year.
type KPIs struct {
	Year                     int
	AnnualBudgetTarget       decimal.Decimal
	TargetIsSet              bool
	YTDActual                decimal.Decimal
	YTDBudget                decimal.Decimal
	Variance                 decimal.Decimal
	VariancePercent          decimal.Decimal
	BudgetUtilization        decimal.Decimal // percent of annual target spent YTD
	TargetAchievement        decimal.Decimal // full-year forecast as percent of target
	FullYearForecast         decimal.Decimal
	ForecastVsTargetVariance decimal.Decimal
	BurnRate                 decimal.Decimal // average spend per elapsed month
	MonthsRemaining          int
	RunwayMonths             decimal.Decimal
	RunwayUnconstrained      bool
	VarianceTrend            Trend
	LastMonthWithActuals     int
}

// Runway projects a category set's spend to year end.
type Runway struct {
	AnnualBudget            decimal.Decimal
	YTDActual               decimal.Decimal
	NetAvailable            decimal.Decimal
	LastThreeMonthAverage   decimal.Decimal
	AverageWindowMonths     int
	RemainingMonths         int
	ProjectedRemainingSpend decimal.Decimal
	ProjectedTotalSpend     decimal.Decimal
	BudgetVsProjection      decimal.Decimal
	IsProjectedOverBudget   bool
	RunwayMonths            decimal.Decimal
	Unconstrained           bool
	LastMonthWithActuals    int
}
