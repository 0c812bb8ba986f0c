// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var fullMonthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatMoney formats an amount as whole dollars with separators.
// e.g., 1234567.89 -> "$1,234,568", -50 -> "-$50"
func FormatMoney(d decimal.Decimal) string {
	r := d.Round(0)
	if r.IsNegative() {
		return "-$" + FormatNumber(r.Neg().IntPart())
	}
	return "$" + FormatNumber(r.IntPart())
}

// FormatMoneyExact formats an amount with cents.
// e.g., 1234.5 -> "$1,234.50"
func FormatMoneyExact(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents == 100 {
		whole = whole.Add(decimal.NewFromInt(1))
		cents = 0
	}
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole.IntPart()), cents)
}

// FormatCompact formats an amount with K/M suffixes for cards.
// e.g., 1234 -> "$1.2K", 2500000 -> "$2.5M"
func FormatCompact(d decimal.Decimal) string {
	f := d.InexactFloat64()
	abs := f
	if abs < 0 {
		abs = -abs
	}
	sign := ""
	if f < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%s$%.0fK", sign, abs/1_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return FormatMoney(d)
	}
}

// FormatVariance formats a variance with an explicit sign.
// Positive (under budget) gets "+".
func FormatVariance(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

// FormatPercent formats an already-scaled percentage.
// e.g., 12.345 -> "12.3%"
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// FormatSignedPercent is FormatPercent with "+" on positive values.
func FormatSignedPercent(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatPercent(d)
	}
	return FormatPercent(d)
}

// FormatMonths formats a runway in months, with "∞" for the cap.
func FormatMonths(d decimal.Decimal, unconstrained bool) string {
	if unconstrained {
		return "∞"
	}
	return d.StringFixed(1) + " mo"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// MonthName returns a 3-letter month abbreviation.
func MonthName(month int) string {
	if month >= 1 && month <= 12 {
		return monthNames[month-1]
	}
	return "???"
}

// FullMonthName returns the full month name, or "—" for month 0.
func FullMonthName(month int) string {
	if month >= 1 && month <= 12 {
		return fullMonthNames[month-1]
	}
	return "—"
}

// ParseMonth accepts a month number (1-12) or an English month name or abbreviation.
func ParseMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range 1-12", n)
		}
		return n, nil
	}
	lower := strings.ToLower(s)
	for i, name := range fullMonthNames {
		full := strings.ToLower(name)
		if lower == full || (len(lower) >= 3 && strings.HasPrefix(full, lower)) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}
