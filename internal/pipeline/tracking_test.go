package pipeline

import (
	"testing"

	"github.com/theirongolddev/bburn/internal/model"
)

func TestVarianceSign(t *testing.T) {
	assertDecimal(t, "Variance(120, 100)", model.Variance(d("120"), d("100")), "-20")
	assertDecimal(t, "Variance(80, 100)", model.Variance(d("80"), d("100")), "20")
}

func TestResolveTrackingFinal(t *testing.T) {
	net := model.Totals{Budget: d("100"), Actual: d("120"), Reforecast: d("90"), Adjustments: d("10")}
	bt := ResolveTracking(net, model.ModeFinal)

	assertDecimal(t, "Counted", bt.Counted, "120")
	assertDecimal(t, "Adjusted", bt.Adjusted, "110")
	assertDecimal(t, "Actual", bt.Actual, "110")
	assertDecimal(t, "Reforecast", bt.Reforecast, "90")
	assertDecimal(t, "Variance", bt.Variance, "-10")
	if bt.Mode != model.ModeFinal {
		t.Errorf("Mode = %v, want Final", bt.Mode)
	}
}

func TestResolveTrackingForecast(t *testing.T) {
	net := model.Totals{Budget: d("100"), Actual: d("30"), Reforecast: d("80"), Adjustments: d("5")}
	bt := ResolveTracking(net, model.ModeForecast)

	assertDecimal(t, "Counted", bt.Counted, "80")
	assertDecimal(t, "Adjusted", bt.Adjusted, "75")
	assertDecimal(t, "Reforecast", bt.Reforecast, "75")
	assertDecimal(t, "Actual", bt.Actual, "30")
	assertDecimal(t, "Variance", bt.Variance, "25")
}

func TestResolveTrackingNegativeAdjustmentAdds(t *testing.T) {
	net := model.Totals{Budget: d("100"), Actual: d("100"), Adjustments: d("-15")}
	bt := ResolveTracking(net, model.ModeFinal)
	assertDecimal(t, "Adjusted", bt.Adjusted, "115")
}

func TestResolveMonthUsesMonthMode(t *testing.T) {
	entries := []model.Entry{entry("rent", 2025, 2, "100", "120", "90", "")}
	modes := model.ForecastModesForYear(2025, map[int]bool{2: true})

	_, final := ResolveMonth(entries, testCategories, modes, 2025, 2)
	assertDecimal(t, "final.Counted", final.Counted, "120")

	_, forecast := ResolveMonth(entries, testCategories, model.ForecastModes{}, 2025, 2)
	assertDecimal(t, "forecast.Counted", forecast.Counted, "90")
}
