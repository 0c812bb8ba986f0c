package pipeline

import (
	"github.com/theirongolddev/bburn/internal/model"
)

// Input is one consistent view of the ledger handed to the engine.
type Input struct {
	Entries         []model.Entry
	Categories      []model.Category
	Modes           model.ForecastModes
	Targets         model.YearlyTargets
	CompensationIDs []string
	Year            int
}

// Snapshot is every engine output for one year, computed from a single Input.
type Snapshot struct {
	Year          int
	Months        [12]model.MonthlyData
	Tracking      [12]model.BudgetTracking
	Quarters      [4]model.QuarterlySummary
	YTD           model.YTDData
	YTDCategories []model.CategorySummary
	KPIs          model.KPIs
	Runway        model.Runway
	Trend         model.Trend
	TrendSeries   []model.TrendPoint
	EntryCount    int
	UnknownCount  int
}

// Compute runs the whole engine for in.Year.
func Compute(in Input) Snapshot {
	yearEntries := FilterByYear(in.Entries, in.Year)
	known := KnownEntries(yearEntries, in.Categories)

	s := Snapshot{
		Year:         in.Year,
		Months:       AggregateYear(known, in.Categories, in.Year),
		Quarters:     ForecastYear(known, in.Categories, in.Modes, in.Year),
		YTD:          AggregateYTD(known, in.Categories, in.Modes, in.Year),
		KPIs:         ComputeKPIs(known, in.Categories, in.Modes, in.Targets, in.Year),
		Runway:       CompensationRunway(known, in.Categories, in.CompensationIDs, in.Modes, in.Year),
		EntryCount:   len(known),
		UnknownCount: len(yearEntries) - len(known),
	}
	for i, md := range s.Months {
		s.Tracking[i] = ResolveTracking(md.NetTotal, in.Modes.Mode(in.Year, md.Month))
	}
	if s.YTD.LastMonthWithActuals > 0 {
		s.YTDCategories = AggregateCategoryYear(known, in.Categories, in.Year, 1, s.YTD.LastMonthWithActuals)
	}
	s.Trend = s.KPIs.VarianceTrend
	s.TrendSeries = TrendSeries(known, in.Year, s.YTD.LastMonthWithActuals)
	return s
}
