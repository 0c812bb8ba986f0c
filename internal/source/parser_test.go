package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// writeImport creates a temp import file and returns a DiscoveredFile for it.
func writeImport(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, ok := FormatOf(path)
	if !ok {
		t.Fatalf("no format for %s", name)
	}
	return DiscoveredFile{Path: path, Format: f}
}

func TestParseFile_CSV(t *testing.T) {
	df := writeImport(t, "q1.csv",
		"category,year,month,budget,actual,reforecast,adjustment,notes",
		"salaries,2025,1,\"$10,000\",9500,,,January payroll",
		"hosting,2025,2,1200,,1300,50,",
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Rows != 2 || len(result.Entries) != 2 {
		t.Fatalf("Rows=%d Entries=%d, want 2/2", result.Rows, len(result.Entries))
	}

	sal := result.Entries[0]
	if sal.CategoryID != "salaries" || sal.Month != 1 || sal.Quarter() != 1 {
		t.Errorf("salaries entry = %+v", sal)
	}
	if !sal.Budget.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Budget = %s, want 10000", sal.Budget)
	}
	if !sal.Actual.Valid || !sal.Actual.Decimal.Equal(decimal.NewFromInt(9500)) {
		t.Errorf("Actual = %+v, want 9500", sal.Actual)
	}
	if sal.Reforecast.Valid {
		t.Errorf("blank reforecast should be absent")
	}
	if sal.Notes != "January payroll" {
		t.Errorf("Notes = %q", sal.Notes)
	}
	if sal.ID == "" {
		t.Error("entry should have an ID")
	}

	host := result.Entries[1]
	if host.Actual.Valid {
		t.Error("blank actual should be absent")
	}
	if !host.ReforecastOrZero().Equal(decimal.NewFromInt(1300)) {
		t.Errorf("Reforecast = %s, want 1300", host.ReforecastOrZero())
	}
	if !host.Adjustment.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Adjustment = %s, want 50", host.Adjustment)
	}
}

func TestParseFile_JSONAcceptsNumbersStringsAndNull(t *testing.T) {
	df := writeImport(t, "entries.json",
		`[`,
		`  {"category":"salaries","year":2025,"month":3,"budget":1000,"actual":"1,050.25","reforecast":null},`,
		`  {"category":"travel","year":2025,"month":3,"budget":"200"}`,
		`]`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(result.Entries))
	}
	if got := result.Entries[0].ActualOrZero(); !got.Equal(decimal.RequireFromString("1050.25")) {
		t.Errorf("Actual = %s, want 1050.25", got)
	}
	if result.Entries[0].Reforecast.Valid {
		t.Error("null reforecast should be absent")
	}
}

func TestParseFile_LastRowWinsPerSlot(t *testing.T) {
	df := writeImport(t, "dup.csv",
		"category,year,month,budget",
		"salaries,2025,1,100",
		"salaries,2025,1,250",
	)

	result := ParseFile(df)
	if len(result.Entries) != 1 {
		t.Fatalf("Entries = %d, want 1 (dedup)", len(result.Entries))
	}
	if !result.Entries[0].Budget.Equal(decimal.NewFromInt(250)) {
		t.Errorf("Budget = %s, want 250 (last wins)", result.Entries[0].Budget)
	}
}

func TestParseFile_BadRowsCountedAndSkipped(t *testing.T) {
	df := writeImport(t, "bad.csv",
		"category,year,month,budget,actual",
		"salaries,2025,13,100,",
		",2025,1,100,",
		"salaries,2025,1,abc,",
		"salaries,2025,1,100,n/a",
		"salaries,2025,2,100,90",
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 4 {
		t.Errorf("ParseErrors = %d, want 4", result.ParseErrors)
	}
	if len(result.RowErrors) != 4 || result.RowErrors[0].Row != 1 {
		t.Errorf("RowErrors = %v", result.RowErrors)
	}
	if len(result.Entries) != 1 || result.Entries[0].Month != 2 {
		t.Errorf("Entries = %+v, want only the February row", result.Entries)
	}
}

func TestParseFile_MissingRequiredColumn(t *testing.T) {
	df := writeImport(t, "nohdr.csv",
		"category,year,budget",
		"salaries,2025,100",
	)
	if result := ParseFile(df); result.Err == nil {
		t.Fatal("expected error for header without month column")
	}
}

func TestWriteCSV_ReadsBack(t *testing.T) {
	df := writeImport(t, "src.csv",
		"category,year,month,budget,actual,reforecast,adjustment,notes",
		"travel,2025,2,200,,150,,",
		"salaries,2025,1,1000,990,,10,bonus",
	)
	in := ParseFile(df)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, in.Entries); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := Parse(&buf, FormatCSV)
	if out.Err != nil || out.ParseErrors != 0 {
		t.Fatalf("re-parse failed: err=%v parseErrors=%d", out.Err, out.ParseErrors)
	}
	if len(out.Entries) != 2 || out.Entries[0].CategoryID != "salaries" {
		t.Fatalf("export should be sorted by month: %+v", out.Entries)
	}
	if out.Entries[1].Actual.Valid {
		t.Error("absent actual should stay absent after export")
	}
}

func TestScanDir_FindsImportFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.json", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 || files[0].Format != FormatCSV || files[1].Format != FormatJSON {
		t.Fatalf("files = %+v", files)
	}

	missing, err := ScanDir(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("missing dir: files=%v err=%v", missing, err)
	}
}

func TestParseFile_JSONSchemaRejectsWrongShape(t *testing.T) {
	tests := map[string]string{
		"object not array": `{"category":"rent","year":2025,"month":1}`,
		"year as string":   `[{"category":"rent","year":"2025","month":1}]`,
		"amount as bool":   `[{"category":"rent","year":2025,"month":1,"budget":true}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			df := writeImport(t, "bad.json", body)
			if result := ParseFile(df); result.Err == nil {
				t.Fatal("expected schema error")
			}
		})
	}
}

func TestParseFile_JSONMissingKeysAreRowErrors(t *testing.T) {
	df := writeImport(t, "partial.json",
		`[{"year":2025,"month":1,"budget":5},{"category":"rent","year":2025,"month":2,"budget":5}]`)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 1 || len(result.Entries) != 1 {
		t.Errorf("ParseErrors = %d, Entries = %d; want 1 and 1", result.ParseErrors, len(result.Entries))
	}
}
