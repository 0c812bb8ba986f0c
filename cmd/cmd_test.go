package cmd

import (
	"testing"
	"time"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/source"
)

func TestParseMonths(t *testing.T) {
	got, err := parseMonths([]string{"jan", "3", "December"})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 3, 12}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	all, err := parseMonths([]string{"all"})
	if err != nil || len(all) != 12 || all[11] != 12 {
		t.Fatalf("all = %v, %v", all, err)
	}

	if _, err := parseMonths([]string{"13"}); err == nil {
		t.Error("month 13 should be rejected")
	}
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format, output string
		want           source.Format
	}{
		{"", "", source.FormatCSV},
		{"", "out.json", source.FormatJSON},
		{"JSON", "", source.FormatJSON},
		{"csv", "out.json", source.FormatCSV},
	}
	for _, tt := range tests {
		flagExportFormat, flagExportOutput = tt.format, tt.output
		got, err := exportFormat()
		if err != nil {
			t.Fatalf("exportFormat(%q, %q): %v", tt.format, tt.output, err)
		}
		if got != tt.want {
			t.Errorf("exportFormat(%q, %q) = %s, want %s", tt.format, tt.output, got, tt.want)
		}
	}

	flagExportFormat = "xlsx"
	if _, err := exportFormat(); err == nil {
		t.Error("unknown format should error")
	}
	flagExportFormat, flagExportOutput = "", ""
}

func TestResolveDaemonFlags(t *testing.T) {
	t.Cleanup(func() {
		flagDaemonAddr, flagDaemonInterval, flagDaemonEventsBuffer = "", 0, 0
	})

	cfg := config.DefaultConfig()
	cfg.Daemon.Addr = "127.0.0.1:9999"
	cfg.Daemon.IntervalSec = 0

	flagDaemonAddr, flagDaemonInterval, flagDaemonEventsBuffer = "", 0, 0
	resolveDaemonFlags(cfg)

	if flagDaemonAddr != "127.0.0.1:9999" {
		t.Errorf("addr = %q", flagDaemonAddr)
	}
	if flagDaemonInterval != time.Duration(config.DefaultConfig().Daemon.IntervalSec)*time.Second {
		t.Errorf("interval = %s", flagDaemonInterval)
	}
	if flagDaemonEventsBuffer != cfg.Daemon.EventsBuffer {
		t.Errorf("events buffer = %d", flagDaemonEventsBuffer)
	}

	flagDaemonAddr = ":1234"
	resolveDaemonFlags(cfg)
	if flagDaemonAddr != ":1234" {
		t.Errorf("explicit addr overridden: %q", flagDaemonAddr)
	}
}

func TestRequiredAndOptionalAmount(t *testing.T) {
	d, err := requiredAmount("budget", "$1,250.50")
	if err != nil || d.String() != "1250.5" {
		t.Fatalf("requiredAmount = %s, %v", d, err)
	}
	if d, err := requiredAmount("budget", ""); err != nil || !d.IsZero() {
		t.Fatalf("blank budget = %s, %v", d, err)
	}
	if _, err := requiredAmount("budget", "abc"); err == nil {
		t.Error("non-numeric budget should error")
	}

	n, err := optionalAmount("actual", " ")
	if err != nil || n.Valid {
		t.Fatalf("blank actual should be absent, got %v, %v", n, err)
	}
	n, err = optionalAmount("actual", "(10)")
	if err != nil || !n.Valid || n.Decimal.String() != "-10" {
		t.Fatalf("optionalAmount = %v, %v", n, err)
	}
}
