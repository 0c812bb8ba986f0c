package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bburn.db"), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveEntryInsertAndUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }

	e := model.NewEntry("payroll", 2025, 3)
	e.Budget = decimal.NewFromInt(1000)
	e.Actual = model.Amount(decimal.NewFromInt(900))
	saved, deleted, err := s.SaveEntry(ctx, e)
	if err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}
	if deleted {
		t.Fatal("SaveEntry() deleted = true, want false")
	}

	later := first.Add(time.Hour)
	s.now = func() time.Time { return later }

	update := model.NewEntry("payroll", 2025, 3)
	update.Budget = decimal.NewFromInt(1200)
	updated, _, err := s.SaveEntry(ctx, update)
	if err != nil {
		t.Fatalf("SaveEntry(update) error = %v", err)
	}
	if updated.ID != saved.ID {
		t.Errorf("ID = %q, want %q", updated.ID, saved.ID)
	}
	if !updated.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, first)
	}

	got, err := s.GetEntry(ctx, update.Key())
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if !got.Budget.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Budget = %s, want 1200", got.Budget)
	}
	if got.Actual.Valid {
		t.Errorf("Actual = %v, want null after update", got.Actual)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, later)
	}
}

func TestSaveEntryEmptyDeletes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := model.NewEntry("rent", 2025, 1)
	e.Budget = decimal.NewFromInt(500)
	if _, _, err := s.SaveEntry(ctx, e); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}

	_, deleted, err := s.SaveEntry(ctx, model.NewEntry("rent", 2025, 1))
	if err != nil {
		t.Fatalf("SaveEntry(empty) error = %v", err)
	}
	if !deleted {
		t.Error("deleted = false, want true")
	}
	if _, err := s.GetEntry(ctx, e.Key()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEntry() error = %v, want ErrNotFound", err)
	}

	// Saving an empty entry that never existed is a no-op.
	_, deleted, err = s.SaveEntry(ctx, model.NewEntry("rent", 2025, 2))
	if err != nil || deleted {
		t.Errorf("SaveEntry(empty, missing) = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestSaveEntryRejectsInvalidMonth(t *testing.T) {
	s := openTestStore(t)
	e := model.NewEntry("rent", 2025, 13)
	e.Budget = decimal.NewFromInt(1)
	if _, _, err := s.SaveEntry(context.Background(), e); err == nil {
		t.Fatal("SaveEntry(month 13) error = nil, want error")
	}
}

func TestDeleteEntry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	e := model.NewEntry("rent", 2025, 4)
	e.Budget = decimal.NewFromInt(10)
	if _, _, err := s.SaveEntry(ctx, e); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteEntry(ctx, e.Key()); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if err := s.DeleteEntry(ctx, e.Key()); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteEntry() error = %v, want ErrNotFound", err)
	}
}

func TestLoadEntriesByYear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, year := range []int{2024, 2025, 2025} {
		for month := 1; month <= 2; month++ {
			e := model.NewEntry("rent", year, month)
			e.Budget = decimal.NewFromInt(int64(month))
			if _, _, err := s.SaveEntry(ctx, e); err != nil {
				t.Fatal(err)
			}
		}
	}

	all, err := s.LoadEntries(ctx, 0)
	if err != nil {
		t.Fatalf("LoadEntries(0) error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("len(all) = %d, want 4", len(all))
	}

	only, err := s.LoadEntries(ctx, 2025)
	if err != nil {
		t.Fatalf("LoadEntries(2025) error = %v", err)
	}
	if len(only) != 2 {
		t.Fatalf("len(2025) = %d, want 2", len(only))
	}
	if only[0].Month != 1 || only[1].Month != 2 {
		t.Errorf("months = %d,%d, want 1,2", only[0].Month, only[1].Month)
	}
}

func TestForecastModes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetForecastMode(ctx, 2025, 1, model.ModeFinal); err != nil {
		t.Fatalf("SetForecastMode() error = %v", err)
	}
	mode, err := s.ToggleForecastMode(ctx, 2025, 2)
	if err != nil {
		t.Fatalf("ToggleForecastMode() error = %v", err)
	}
	if mode != model.ModeFinal {
		t.Errorf("toggled mode = %v, want Final", mode)
	}
	mode, err = s.ToggleForecastMode(ctx, 2025, 1)
	if err != nil {
		t.Fatal(err)
	}
	if mode != model.ModeForecast {
		t.Errorf("toggled mode = %v, want Forecast", mode)
	}

	modes, err := s.LoadForecastModes(ctx)
	if err != nil {
		t.Fatalf("LoadForecastModes() error = %v", err)
	}
	got := modes.FinalMonths(2025)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("FinalMonths(2025) = %v, want [2]", got)
	}
}

func TestYearlyTargets(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetYearlyTarget(ctx, 2025, decimal.RequireFromString("120000.50")); err != nil {
		t.Fatalf("SetYearlyTarget() error = %v", err)
	}
	if err := s.SetYearlyTarget(ctx, 2025, decimal.NewFromInt(-1)); err == nil {
		t.Error("SetYearlyTarget(negative) error = nil, want error")
	}

	data, err := s.LoadData(ctx, 2025)
	if err != nil {
		t.Fatalf("LoadData() error = %v", err)
	}
	target, ok := data.Targets.Target(2025)
	if !ok || !target.Equal(decimal.RequireFromString("120000.5")) {
		t.Errorf("Target(2025) = %s, %v, want 120000.5, true", target, ok)
	}

	if err := s.ClearYearlyTarget(ctx, 2025); err != nil {
		t.Fatal(err)
	}
	targets, err := s.LoadYearlyTargets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := targets.Target(2025); ok {
		t.Error("Target(2025) still set after clear")
	}
}

func TestFileTracker(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.TrackFile(ctx, "/data/a.csv", FileState{MtimeNs: 1, Size: 10}); err != nil {
		t.Fatal(err)
	}
	if err := s.TrackFile(ctx, "/data/a.csv", FileState{MtimeNs: 2, Size: 20}); err != nil {
		t.Fatal(err)
	}
	files, err := s.GetTrackedFiles(ctx)
	if err != nil {
		t.Fatalf("GetTrackedFiles() error = %v", err)
	}
	if got := files["/data/a.csv"]; got.MtimeNs != 2 || got.Size != 20 {
		t.Errorf("tracked = %+v, want {2 20}", got)
	}
}

func TestOpenSharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bburn.db")
	ctx := context.Background()

	a, err := Open(path, nil)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	e := model.NewEntry("rent", 2025, 1)
	e.Budget = decimal.NewFromInt(100)
	if _, _, err := a.SaveEntry(ctx, e); err != nil {
		t.Fatal(err)
	}

	b, err := Open(path, nil)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	n, err := b.EntryCount(ctx)
	if err != nil || n != 1 {
		t.Fatalf("EntryCount() = %d, %v; want 1", n, err)
	}
}
