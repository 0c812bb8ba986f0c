package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/source"
	"github.com/theirongolddev/bburn/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "bburn.db"), nil)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestParseAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "category,year,month,budget\nrent,2025,1,100\n")
	writeFile(t, dir, "b.csv", "category,year,month,budget\nrent,2025,1,200\nrent,2025,2,300\n")

	files, err := source.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	results, err := ParseAll(context.Background(), files, func(_, _ int) { calls.Add(1) })
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if len(results[0].Entries) != 1 || len(results[1].Entries) != 2 {
		t.Errorf("entries = %d,%d, want 1,2", len(results[0].Entries), len(results[1].Entries))
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("progress calls = %d, want 2", n)
	}
}

func TestImportLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "category,year,month,budget\nrent,2025,1,100\n")
	writeFile(t, dir, "b.csv", "category,year,month,budget,actual\nrent,2025,1,200,150\nghost,2025,1,5,\n")

	files, err := source.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	s := openStore(t)
	ctx := context.Background()
	cats := []model.Category{{ID: "rent", Name: "Rent", Group: model.GroupOpex}}

	res, err := Import(ctx, s, files, Options{Categories: cats})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.ParsedFiles != 2 {
		t.Errorf("ParsedFiles = %d, want 2", res.ParsedFiles)
	}
	if res.UnknownCategory != 1 {
		t.Errorf("UnknownCategory = %d, want 1", res.UnknownCategory)
	}

	got, err := s.GetEntry(ctx, model.EntryKey{CategoryID: "rent", Year: 2025, Month: 1})
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if !got.Budget.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Budget = %s, want 200", got.Budget)
	}
	if !got.ActualOrZero().Equal(decimal.NewFromInt(150)) {
		t.Errorf("Actual = %s, want 150", got.ActualOrZero())
	}
}

func TestImportSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"category":"rent","year":2025,"month":3,"budget":"42"}]`)

	files, err := source.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	s := openStore(t)
	ctx := context.Background()

	first, err := Import(ctx, s, files, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.Saved != 1 {
		t.Errorf("first Saved = %d, want 1", first.Saved)
	}

	second, err := Import(ctx, s, files, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if second.Unchanged != 1 || second.ParsedFiles != 0 {
		t.Errorf("second = unchanged %d parsed %d, want 1, 0", second.Unchanged, second.ParsedFiles)
	}

	forced, err := Import(ctx, s, files, Options{Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if forced.ParsedFiles != 1 {
		t.Errorf("forced ParsedFiles = %d, want 1", forced.ParsedFiles)
	}
}
