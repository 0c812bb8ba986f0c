package source

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

// SortEntries orders entries by year, month, then category for stable output.
func SortEntries(entries []model.Entry) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.CategoryID < b.CategoryID
	})
	return out
}

// FromEntry converts an entry back to its import shape.
func FromEntry(e model.Entry) RawEntry {
	return RawEntry{
		Category:   e.CategoryID,
		Year:       e.Year,
		Month:      e.Month,
		Budget:     RawAmount(e.Budget.String()),
		Actual:     optionalText(e.Actual),
		Reforecast: optionalText(e.Reforecast),
		Adjustment: RawAmount(e.Adjustment.String()),
		Notes:      e.Notes,
	}
}

func optionalText(d decimal.NullDecimal) RawAmount {
	if !d.Valid {
		return ""
	}
	return RawAmount(d.Decimal.String())
}

// WriteCSV writes entries with the same header ParseFile reads.
func WriteCSV(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, e := range SortEntries(entries) {
		r := FromEntry(e)
		rec := []string{
			r.Category,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Month),
			string(r.Budget),
			string(r.Actual),
			string(r.Reforecast),
			string(r.Adjustment),
			r.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []model.Entry) error {
	sorted := SortEntries(entries)
	raws := make([]RawEntry, len(sorted))
	for i, e := range sorted {
		raws[i] = FromEntry(e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raws)
}
