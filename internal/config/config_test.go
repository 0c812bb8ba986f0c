package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/bburn/internal/model"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Daemon.Addr != DefaultConfig().Daemon.Addr {
		t.Errorf("Daemon.Addr = %q, want default", cfg.Daemon.Addr)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bburn", "config.toml")
	cfg := DefaultConfig()
	cfg.General.DefaultYear = 2024
	cfg.Compensation.CategoryIDs = []string{"salaries"}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.General.DefaultYear != 2024 {
		t.Errorf("DefaultYear = %d, want 2024", got.General.DefaultYear)
	}
	if len(got.Compensation.CategoryIDs) != 1 || got.Compensation.CategoryIDs[0] != "salaries" {
		t.Errorf("CategoryIDs = %v, want [salaries]", got.Compensation.CategoryIDs)
	}
}

func TestYearFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := DefaultConfig().Year(now); got != 2026 {
		t.Errorf("Year() = %d, want 2026", got)
	}
	cfg := DefaultConfig()
	cfg.General.DefaultYear = 2023
	if got := cfg.Year(now); got != 2023 {
		t.Errorf("Year() = %d, want 2023", got)
	}
}

func TestDBPathEnvOverride(t *testing.T) {
	t.Setenv("BBURN_DB", "/tmp/override.db")
	if got := DBPath(DefaultConfig()); got != "/tmp/override.db" {
		t.Errorf("DBPath() = %q, want env override", got)
	}
}

func TestDBPathDataDir(t *testing.T) {
	t.Setenv("BBURN_DB", "")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DBPath(DefaultConfig()); got != filepath.Join("/data", "bburn", "bburn.db") {
		t.Errorf("DBPath() = %q", got)
	}
}

func TestParseCategories(t *testing.T) {
	data := []byte(`
categories:
  - id: salaries
    name: Salaries
    group: opex
    subgroup: Compensation & Benefits
  - id: cloud
    group: cost-of-sales
  - id: capitalized
    name: Capitalized Labor
    group: opex
    contra: true
`)
	cats, err := ParseCategories(data)
	if err != nil {
		t.Fatalf("ParseCategories() error = %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("len = %d, want 3", len(cats))
	}
	if cats[1].Name != "cloud" || cats[1].Subgroup != model.SubgroupOther {
		t.Errorf("cats[1] = %+v, want defaulted name and subgroup", cats[1])
	}
	if !cats[2].Contra {
		t.Error("cats[2].Contra = false, want true")
	}
}

func TestParseCategoriesInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":     "categories: []",
		"no id":     "categories:\n  - name: x\n    group: opex\n",
		"duplicate": "categories:\n  - id: a\n    group: opex\n  - id: a\n    group: opex\n",
		"bad group": "categories:\n  - id: a\n    group: capex\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCategories([]byte(data)); !errors.Is(err, ErrInvalidCategory) {
				t.Errorf("error = %v, want ErrInvalidCategory", err)
			}
		})
	}
}

func TestMarshalCategoriesRoundTrip(t *testing.T) {
	data, err := MarshalCategories(DefaultCategories())
	if err != nil {
		t.Fatal(err)
	}
	cats, err := ParseCategories(data)
	if err != nil {
		t.Fatalf("ParseCategories() error = %v", err)
	}
	if len(cats) != len(DefaultCategories()) {
		t.Errorf("len = %d, want %d", len(cats), len(DefaultCategories()))
	}
}

func TestDefaultCompensationIDsExist(t *testing.T) {
	ids := make(map[string]bool)
	for _, c := range DefaultCategories() {
		ids[c.ID] = true
	}
	for _, id := range DefaultConfig().Compensation.CategoryIDs {
		if !ids[id] {
			t.Errorf("compensation id %q is not a default category", id)
		}
	}
}
