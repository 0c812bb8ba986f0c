// Package model defines domain types for bburn budgets, forecasts and summaries.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is the leaf fact: one category's planned and realized figures for one month.
// Actual and Reforecast are optional; an invalid NullDecimal means "not yet known".
type Entry struct {
	ID         string
	CategoryID string
	Year       int
	Month      int // 1-12

	Budget     decimal.Decimal
	Actual     decimal.NullDecimal
	Reforecast decimal.NullDecimal
	Adjustment decimal.Decimal

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntry returns an entry with a fresh ID and zero amounts.
func NewEntry(categoryID string, year, month int) Entry {
	return Entry{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Year:       year,
		Month:      month,
	}
}

// Quarter returns the calendar quarter (1-4) the entry's month falls in.
func (e Entry) Quarter() int {
	return QuarterOf(e.Month)
}

// ActualOrZero returns the actual amount, or zero when it has not been recorded.
func (e Entry) ActualOrZero() decimal.Decimal {
	if e.Actual.Valid {
		return e.Actual.Decimal
	}
	return decimal.Zero
}

// ReforecastOrZero returns the reforecast amount, or zero when absent.
func (e Entry) ReforecastOrZero() decimal.Decimal {
	if e.Reforecast.Valid {
		return e.Reforecast.Decimal
	}
	return decimal.Zero
}

// IsEmpty reports whether every field the operator can fill in is blank.
// Empty entries are removed rather than stored.
func (e Entry) IsEmpty() bool {
	return e.Budget.IsZero() &&
		!e.Actual.Valid &&
		!e.Reforecast.Valid &&
		e.Adjustment.IsZero() &&
		strings.TrimSpace(e.Notes) == ""
}

// Key identifies the (category, year, month) slot an entry occupies.
func (e Entry) Key() EntryKey {
	return EntryKey{CategoryID: e.CategoryID, Year: e.Year, Month: e.Month}
}

// EntryKey is the uniqueness key for entries.
type EntryKey struct {
	CategoryID string
	Year       int
	Month      int
}

// QuarterOf returns ceil(month/3). Months outside 1-12 yield 0.
func QuarterOf(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return (month + 2) / 3
}

// ValidMonth reports whether m is a calendar month number.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// Amount wraps a decimal into a valid NullDecimal.
func Amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}
