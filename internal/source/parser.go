// Package source imports and exports budget entries as CSV or JSON files.
package source

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/bburn/internal/model"
)

// maxRowErrors bounds how many row errors a ParseResult keeps verbatim.
const maxRowErrors = 20

// RowError describes one rejected row.
type RowError struct {
	Row int // 1-based data row (CSV header excluded)
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// ParseResult holds the output of parsing a single import file.
type ParseResult struct {
	File        DiscoveredFile
	Entries     []model.Entry
	Rows        int
	ParseErrors int
	RowErrors   []RowError
	Err         error
}

// ParseFile reads an import file and returns its valid entries. Rows that fail
// validation are counted and skipped. When a (category, year, month) slot
// appears more than once, the last row wins.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	defer func() { _ = f.Close() }()

	res := Parse(f, df.Format)
	res.File = df
	return res
}

// Parse reads entries in the given format from r.
func Parse(r io.Reader, format Format) ParseResult {
	var (
		raws []RawEntry
		err  error
	)
	switch format {
	case FormatCSV:
		raws, err = readCSV(r)
	case FormatJSON:
		raws, err = readJSON(r)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return ParseResult{Err: err}
	}

	res := ParseResult{Rows: len(raws)}
	slots := make(map[model.EntryKey]int)

	for i, raw := range raws {
		e, err := ToEntry(raw)
		if err != nil {
			res.ParseErrors++
			if len(res.RowErrors) < maxRowErrors {
				res.RowErrors = append(res.RowErrors, RowError{Row: i + 1, Err: err})
			}
			continue
		}
		if idx, dup := slots[e.Key()]; dup {
			res.Entries[idx] = e
			continue
		}
		slots[e.Key()] = len(res.Entries)
		res.Entries = append(res.Entries, e)
	}
	return res
}

// ToEntry validates a raw row and converts it to an entry with a fresh ID.
func ToEntry(raw RawEntry) (model.Entry, error) {
	category := strings.TrimSpace(raw.Category)
	if category == "" {
		return model.Entry{}, errors.New("missing category")
	}
	if raw.Year < 1900 || raw.Year > 9999 {
		return model.Entry{}, fmt.Errorf("invalid year %d", raw.Year)
	}
	if !model.ValidMonth(raw.Month) {
		return model.Entry{}, fmt.Errorf("invalid month %d", raw.Month)
	}

	e := model.NewEntry(category, raw.Year, raw.Month)
	e.Notes = strings.TrimSpace(raw.Notes)

	var err error
	if strings.TrimSpace(string(raw.Budget)) != "" {
		if e.Budget, err = ParseAmount(string(raw.Budget)); err != nil {
			return model.Entry{}, fmt.Errorf("budget %q: %w", raw.Budget, err)
		}
	}
	if e.Actual, err = parseOptional(string(raw.Actual)); err != nil {
		return model.Entry{}, fmt.Errorf("actual %q: %w", raw.Actual, err)
	}
	if e.Reforecast, err = parseOptional(string(raw.Reforecast)); err != nil {
		return model.Entry{}, fmt.Errorf("reforecast %q: %w", raw.Reforecast, err)
	}
	if strings.TrimSpace(string(raw.Adjustment)) != "" {
		if e.Adjustment, err = ParseAmount(string(raw.Adjustment)); err != nil {
			return model.Entry{}, fmt.Errorf("adjustment %q: %w", raw.Adjustment, err)
		}
	}
	return e, nil
}

func readJSON(r io.Reader) ([]RawEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}
	if err := validateEntriesJSON(data); err != nil {
		return nil, err
	}
	var raws []RawEntry
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return raws, nil
}

// csvColumns are the recognized header names; only the first four are required.
var csvColumns = []string{"category", "year", "month", "budget", "actual", "reforecast", "adjustment", "notes"}

func readCSV(r io.Reader) ([]RawEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range csvColumns[:4] {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv header missing %q column", required)
		}
	}

	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var raws []RawEntry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}

		// Unparseable year/month become 0 and are rejected by ToEntry.
		year, _ := strconv.Atoi(cell(rec, "year"))
		month, _ := strconv.Atoi(cell(rec, "month"))
		raws = append(raws, RawEntry{
			Category:   cell(rec, "category"),
			Year:       year,
			Month:      month,
			Budget:     RawAmount(cell(rec, "budget")),
			Actual:     RawAmount(cell(rec, "actual")),
			Reforecast: RawAmount(cell(rec, "reforecast")),
			Adjustment: RawAmount(cell(rec, "adjustment")),
			Notes:      cell(rec, "notes"),
		})
	}
	return raws, nil
}
