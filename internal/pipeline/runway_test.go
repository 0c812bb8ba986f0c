package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

func TestProjectRunway(t *testing.T) {
	r := ProjectRunway(RunwayInput{
		AnnualBudget:         d("1200"),
		MonthlyActuals:       series("100", "100", "90", "120", "90"),
		LastMonthWithActuals: 5,
	})

	assertDecimal(t, "YTDActual", r.YTDActual, "500")
	assertDecimal(t, "NetAvailable", r.NetAvailable, "700")
	assertDecimal(t, "LastThreeMonthAverage", r.LastThreeMonthAverage, "100")
	if r.RemainingMonths != 7 {
		t.Errorf("RemainingMonths = %d, want 7", r.RemainingMonths)
	}
	assertDecimal(t, "ProjectedRemainingSpend", r.ProjectedRemainingSpend, "700")
	assertDecimal(t, "ProjectedTotalSpend", r.ProjectedTotalSpend, "1200")
	assertDecimal(t, "BudgetVsProjection", r.BudgetVsProjection, "0")
	assertDecimal(t, "RunwayMonths", r.RunwayMonths, "7")
	if r.IsProjectedOverBudget {
		t.Error("IsProjectedOverBudget = true, want false")
	}
}

func TestProjectRunwayZeroGuard(t *testing.T) {
	r := ProjectRunway(RunwayInput{
		AnnualBudget:         d("1000"),
		MonthlyActuals:       series("300", "0", "0", "0"),
		LastMonthWithActuals: 4,
	})
	assertDecimal(t, "LastThreeMonthAverage", r.LastThreeMonthAverage, "0")
	assertDecimal(t, "ProjectedRemainingSpend", r.ProjectedRemainingSpend, "0")
	assertDecimal(t, "ProjectedTotalSpend", r.ProjectedTotalSpend, "300")
	assertDecimal(t, "BudgetVsProjection", r.BudgetVsProjection, "700")
	if !r.Unconstrained {
		t.Error("Unconstrained = false, want true")
	}
	assertDecimal(t, "RunwayMonths", r.RunwayMonths, "999")
}

func TestProjectRunwayShortHistory(t *testing.T) {
	r := ProjectRunway(RunwayInput{
		AnnualBudget:         d("100"),
		MonthlyActuals:       series("50", "70"),
		LastMonthWithActuals: 2,
	})
	if r.AverageWindowMonths != 2 {
		t.Errorf("AverageWindowMonths = %d, want 2", r.AverageWindowMonths)
	}
	assertDecimal(t, "LastThreeMonthAverage", r.LastThreeMonthAverage, "60")
	assertDecimal(t, "RunwayMonths", r.RunwayMonths, "0")
	if !r.IsProjectedOverBudget {
		t.Error("IsProjectedOverBudget = false, want true")
	}
}

func TestRunwayMonthsCap(t *testing.T) {
	assertDecimal(t, "cap", runwayMonths(d("1000000"), d("1")), "999")
	assertDecimal(t, "floor", runwayMonths(d("-5"), d("1")), "0")
	assertDecimal(t, "zero burn", runwayMonths(d("5"), decimal.Zero), "999")
}

func TestCompensationRunway(t *testing.T) {
	var entries []model.Entry
	for m := 1; m <= 12; m++ {
		entries = append(entries, entry("payroll", 2025, m, "100", "", "", ""))
		entries = append(entries, entry("rent", 2025, m, "1000", "1000", "", ""))
	}
	for m := 1; m <= 3; m++ {
		entries[(m-1)*2].Actual = model.Amount(d("110"))
	}
	modes := model.ForecastModesForYear(2025, map[int]bool{1: true, 2: true, 3: true})

	r := CompensationRunway(entries, testCategories, []string{"payroll", "benefits"}, modes, 2025)
	assertDecimal(t, "AnnualBudget", r.AnnualBudget, "1200")
	assertDecimal(t, "YTDActual", r.YTDActual, "330")
	assertDecimal(t, "LastThreeMonthAverage", r.LastThreeMonthAverage, "110")
	assertDecimal(t, "ProjectedTotalSpend", r.ProjectedTotalSpend, "1320")
	if !r.IsProjectedOverBudget {
		t.Error("IsProjectedOverBudget = false, want true")
	}
}
