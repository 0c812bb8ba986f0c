// Package pipeline is the budget aggregation and forecast-tracking engine.
//
// Every function here is a pure transform over its arguments: no I/O, no
// package state, and inputs are never modified. Calling any of them twice with
// the same snapshot returns identical results.
package pipeline

import (
	"github.com/theirongolddev/bburn/internal/model"
)

// categoryAccumulator sums entries per category for one aggregation pass.
// It is built once per call from the category list and only AggregateMonth
// writes to it.
type categoryAccumulator struct {
	order  []model.Category
	totals map[string]*model.Totals
}

func newCategoryAccumulator(categories []model.Category) *categoryAccumulator {
	acc := &categoryAccumulator{
		order:  make([]model.Category, 0, len(categories)),
		totals: make(map[string]*model.Totals, len(categories)),
	}
	for _, c := range categories {
		if _, dup := acc.totals[c.ID]; dup {
			continue
		}
		acc.order = append(acc.order, c)
		acc.totals[c.ID] = &model.Totals{}
	}
	return acc
}

// add folds one entry in. Entries for unknown categories are dropped.
func (acc *categoryAccumulator) add(e model.Entry) {
	t, ok := acc.totals[e.CategoryID]
	if !ok {
		return
	}
	t.Budget = t.Budget.Add(e.Budget)
	t.Actual = t.Actual.Add(e.ActualOrZero())
	t.Reforecast = t.Reforecast.Add(e.ReforecastOrZero())
	t.Adjustments = t.Adjustments.Add(e.Adjustment)
}

func (acc *categoryAccumulator) summary(c model.Category) model.CategorySummary {
	t := *acc.totals[c.ID]
	return model.CategorySummary{
		Category:        c,
		Totals:          t,
		Variance:        t.Variance(),
		VariancePercent: t.VariancePercent(),
	}
}

// group rolls the accumulated categories of g into subgroups, in config order.
func (acc *categoryAccumulator) group(g model.Group) model.GroupTotals {
	gt := model.GroupTotals{Group: g}
	index := make(map[string]int)

	for _, c := range acc.order {
		if c.Group != g {
			continue
		}
		name := c.Subgroup
		if name == "" {
			name = model.SubgroupOther
		}
		i, ok := index[name]
		if !ok {
			i = len(gt.Subgroups)
			index[name] = i
			gt.Subgroups = append(gt.Subgroups, model.SubgroupTotals{Name: name})
		}
		cs := acc.summary(c)
		sg := &gt.Subgroups[i]
		sg.Categories = append(sg.Categories, cs)
		sg.Totals = sg.Totals.Add(cs.Totals)
	}

	for i := range gt.Subgroups {
		sg := &gt.Subgroups[i]
		sg.Variance = sg.Totals.Variance()
		sg.VariancePercent = sg.Totals.VariancePercent()
		gt.Totals = gt.Totals.Add(sg.Totals)
	}
	gt.Variance = gt.Totals.Variance()
	gt.VariancePercent = gt.Totals.VariancePercent()
	return gt
}

// AggregateMonth rolls the entries of one (year, month) up through category,
// subgroup and group into a MonthlyData. Categories without entries appear
// with zero totals. Contra categories are summed with their stored sign.
func AggregateMonth(entries []model.Entry, categories []model.Category, year, month int) model.MonthlyData {
	acc := newCategoryAccumulator(categories)
	for _, e := range entries {
		if e.Year == year && e.Month == month {
			acc.add(e)
		}
	}

	md := model.MonthlyData{
		Year:        year,
		Month:       month,
		CostOfSales: acc.group(model.GroupCostOfSales),
		Opex:        acc.group(model.GroupOpex),
	}
	md.NetTotal = md.CostOfSales.Totals.Add(md.Opex.Totals)
	return md
}

// AggregateYear returns AggregateMonth for each month of the year; index 0 is January.
func AggregateYear(entries []model.Entry, categories []model.Category, year int) [12]model.MonthlyData {
	yearEntries := FilterByYear(entries, year)
	var months [12]model.MonthlyData
	for m := 1; m <= 12; m++ {
		months[m-1] = AggregateMonth(yearEntries, categories, year, m)
	}
	return months
}

// AggregateCategoryYear sums each category across months from..to inclusive.
// The result follows config order and includes zero rows.
func AggregateCategoryYear(entries []model.Entry, categories []model.Category, year, from, to int) []model.CategorySummary {
	acc := newCategoryAccumulator(categories)
	for _, e := range entries {
		if e.Year == year && e.Month >= from && e.Month <= to {
			acc.add(e)
		}
	}
	out := make([]model.CategorySummary, 0, len(acc.order))
	for _, c := range acc.order {
		out = append(out, acc.summary(c))
	}
	return out
}
