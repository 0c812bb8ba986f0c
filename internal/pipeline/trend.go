package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// trendWindow is how many trailing months feed the classifier.
const trendWindow = 3

var (
	stableMagnitude    = decimal.NewFromInt(5)
	stableTrendBand    = decimal.NewFromInt(10)
	trendChangeTrigger = decimal.NewFromInt(2)
)

// CumulativeVariancePercents returns, for each of the trailing up to three
// months ending at throughMonth, the variance percent of cumulative budget and
// actual from January through that month. Oldest first.
func CumulativeVariancePercents(entries []model.Entry, year, throughMonth int) []decimal.Decimal {
	if throughMonth < 1 {
		return nil
	}
	if throughMonth > 12 {
		throughMonth = 12
	}

	var budget, actual [13]decimal.Decimal
	for _, e := range entries {
		if e.Year != year || !model.ValidMonth(e.Month) {
			continue
		}
		budget[e.Month] = budget[e.Month].Add(e.Budget)
		actual[e.Month] = actual[e.Month].Add(e.ActualOrZero())
	}

	start := throughMonth - trendWindow + 1
	if start < 1 {
		start = 1
	}

	var cumBudget, cumActual decimal.Decimal
	pcts := make([]decimal.Decimal, 0, trendWindow)
	for m := 1; m <= throughMonth; m++ {
		cumBudget = cumBudget.Add(budget[m])
		cumActual = cumActual.Add(actual[m])
		if m >= start {
			v := model.Variance(cumActual, cumBudget)
			pcts = append(pcts, model.VariancePercent(v, cumBudget))
		}
	}
	return pcts
}

// ClassifyVarianceSeries labels a series of cumulative variance percents,
// oldest first. With fewer than two points only the magnitude of the latest
// point is considered.
func ClassifyVarianceSeries(pcts []decimal.Decimal) model.Trend {
	current := decimal.Zero
	if len(pcts) > 0 {
		current = pcts[len(pcts)-1]
	}

	if len(pcts) < 2 {
		if current.Abs().LessThan(stableMagnitude) {
			return model.TrendStable
		}
		return bySign(current)
	}

	change := current.Sub(pcts[len(pcts)-2])
	switch {
	case change.GreaterThan(trendChangeTrigger):
		return model.TrendImproving
	case change.LessThan(trendChangeTrigger.Neg()):
		return model.TrendWorsening
	case current.Abs().LessThan(stableTrendBand):
		return model.TrendStable
	default:
		return bySign(current)
	}
}

func bySign(pct decimal.Decimal) model.Trend {
	if pct.IsPositive() {
		return model.TrendUnderBudget
	}
	return model.TrendOverBudget
}

// ClassifyTrend labels the variance direction of year through throughMonth.
func ClassifyTrend(entries []model.Entry, year, throughMonth int) model.Trend {
	return ClassifyVarianceSeries(CumulativeVariancePercents(entries, year, throughMonth))
}

// TrendSeries returns the cumulative variance percent for every month from
// January through throughMonth.
func TrendSeries(entries []model.Entry, year, throughMonth int) []model.TrendPoint {
	if throughMonth > 12 {
		throughMonth = 12
	}
	var cumBudget, cumActual decimal.Decimal
	points := make([]model.TrendPoint, 0, max(throughMonth, 0))
	for m := 1; m <= throughMonth; m++ {
		for _, e := range entries {
			if e.Year == year && e.Month == m {
				cumBudget = cumBudget.Add(e.Budget)
				cumActual = cumActual.Add(e.ActualOrZero())
			}
		}
		v := model.Variance(cumActual, cumBudget)
		points = append(points, model.TrendPoint{Month: m, VariancePercent: model.VariancePercent(v, cumBudget)})
	}
	return points
}
