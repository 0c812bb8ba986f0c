package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999.4", "$999"},
		{"1234567.89", "$1,234,568"},
		{"-50", "-$50"},
		{"-1234.5", "-$1,235"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyExact(t *testing.T) {
	tests := map[string]string{
		"1234.5":  "$1,234.50",
		"-0.07":   "-$0.07",
		"9.999":   "$10.00",
		"1000000": "$1,000,000.00",
	}
	for in, want := range tests {
		if got := FormatMoneyExact(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatMoneyExact(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := map[string]string{
		"512":     "$512",
		"1234":    "$1.2K",
		"45000":   "$45K",
		"2500000": "$2.5M",
		"-3000":   "-$3.0K",
	}
	for in, want := range tests {
		if got := FormatCompact(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatCompact(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatVariance(t *testing.T) {
	if got := FormatVariance(decimal.NewFromInt(20)); got != "+$20" {
		t.Errorf("FormatVariance(20) = %q", got)
	}
	if got := FormatVariance(decimal.NewFromInt(-20)); got != "-$20" {
		t.Errorf("FormatVariance(-20) = %q", got)
	}
	if got := FormatSignedPercent(decimal.RequireFromString("12.345")); got != "+12.3%" {
		t.Errorf("FormatSignedPercent = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	tests := map[string]int{"3": 3, "12": 12, "mar": 3, "March": 3, "sept": 9}
	for in, want := range tests {
		got, err := ParseMonth(in)
		if err != nil || got != want {
			t.Errorf("ParseMonth(%q) = %d, %v, want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"0", "13", "ma", "smarch"} {
		if _, err := ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) error = nil, want error", bad)
		}
	}
}

func TestFormatMonths(t *testing.T) {
	if got := FormatMonths(decimal.NewFromInt(999), true); got != "∞" {
		t.Errorf("FormatMonths(unconstrained) = %q", got)
	}
	if got := FormatMonths(decimal.RequireFromString("10.333"), false); got != "10.3 mo" {
		t.Errorf("FormatMonths = %q", got)
	}
}
