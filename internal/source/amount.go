package source

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for text that is not a monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// currencyReplacer strips symbols, thousands separators and spacing that
// people paste from spreadsheets.
var currencyReplacer = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "",
	",", "", "_", "", " ", "", " ", "",
)

// ParseAmount converts operator-entered text into a decimal.
//
// Accepted: "1234.5", "$1,234.50", "-12", "(1,234.50)" (accounting negative),
// "USD 10". Empty or non-numeric input returns ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	upper := strings.ToUpper(s)
	for _, code := range []string{"USD", "EUR", "GBP"} {
		upper = strings.TrimPrefix(upper, code)
		upper = strings.TrimSuffix(upper, code)
	}
	s = currencyReplacer.Replace(upper)
	if s == "" || strings.ContainsAny(s, "E") {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if negative {
		if d.IsNegative() {
			return decimal.Zero, ErrInvalidAmount
		}
		d = d.Neg()
	}
	return d, nil
}

// parseOptional maps blank text to an absent amount.
func parseOptional(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
