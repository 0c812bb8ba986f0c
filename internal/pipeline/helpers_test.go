package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

var testCategories = []model.Category{
	{ID: "hosting", Name: "Hosting", Group: model.GroupCostOfSales},
	{ID: "payroll", Name: "Payroll", Group: model.GroupOpex, Subgroup: model.SubgroupCompensation},
	{ID: "benefits", Name: "Benefits", Group: model.GroupOpex, Subgroup: model.SubgroupCompensation},
	{ID: "rent", Name: "Rent", Group: model.GroupOpex, Subgroup: model.SubgroupOther},
	{ID: "rebates", Name: "Vendor Rebates", Group: model.GroupOpex, Contra: true},
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(cat string, year, month int, budget, actual, reforecast, adjustment string) model.Entry {
	e := model.Entry{CategoryID: cat, Year: year, Month: month}
	if budget != "" {
		e.Budget = d(budget)
	}
	if actual != "" {
		e.Actual = model.Amount(d(actual))
	}
	if reforecast != "" {
		e.Reforecast = model.Amount(d(reforecast))
	}
	if adjustment != "" {
		e.Adjustment = d(adjustment)
	}
	return e
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got.String(), want)
	}
}
