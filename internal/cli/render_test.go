package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Rent", "€100"},
			Separator,
			{"Total", "$1,000"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
}

func TestRenderSparklineFlat(t *testing.T) {
	got := RenderSparkline([]decimal.Decimal{decimal.NewFromInt(-3), decimal.NewFromInt(-3)})
	if got != "▅▅" {
		t.Errorf("RenderSparkline(flat) = %q, want ▅▅", got)
	}
}

func TestRenderSparklineRange(t *testing.T) {
	got := RenderSparkline([]decimal.Decimal{decimal.NewFromInt(-10), decimal.Zero, decimal.NewFromInt(10)})
	runes := []rune(got)
	if len(runes) != 3 || runes[0] != '▁' || runes[2] != '█' {
		t.Errorf("RenderSparkline = %q", got)
	}
}
