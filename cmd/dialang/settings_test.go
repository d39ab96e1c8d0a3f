package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"dialang/internal/token"
)

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "dialang"}
	root.PersistentFlags().String("color", "auto", "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().Bool("timings", false, "")
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("cache", false, "")
	return root
}

func TestLoadSettingsFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialang.toml")
	content := "[diagnostics]\nmax = 5\ncolor = \"on\"\n[parser]\nsync_starters = [\"class\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newTestRoot(t)
	if err := root.PersistentFlags().Parse([]string{"--config", path, "--max-diagnostics", "9"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(root)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.maxDiagnostics != 9 {
		t.Fatalf("flag should win, max = %d", s.maxDiagnostics)
	}
	if s.color != "on" {
		t.Fatalf("config color lost: %q", s.color)
	}

	opts, err := s.driverOptions()
	if err != nil {
		t.Fatalf("driverOptions: %v", err)
	}
	if len(opts.SyncStarters) != 1 || opts.SyncStarters[0] != token.KwClass {
		t.Fatalf("starters = %v", opts.SyncStarters)
	}
	if opts.SyncTerminators != nil {
		t.Fatalf("terminators must keep the parser default, got %v", opts.SyncTerminators)
	}
	if opts.Cache != nil || opts.Timer != nil {
		t.Fatalf("cache and timer must be off by default")
	}
}

func TestLoadSettingsRejectsBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialang.toml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	root := newTestRoot(t)
	if err := root.PersistentFlags().Parse([]string{"--config", path, "--color", "sometimes"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(root); err == nil {
		t.Fatalf("expected an error for --color sometimes")
	}
}

func TestLoadSettingsRejectsNegativeMaxDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialang.toml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	root := newTestRoot(t)
	if err := root.PersistentFlags().Parse([]string{"--config", path, "--max-diagnostics", "-1"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(root); err == nil {
		t.Fatalf("expected an error for --max-diagnostics -1")
	}
}
