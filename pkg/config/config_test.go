package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.DefaultPane != "launcher" {
		t.Errorf("expected default pane 'launcher', got %q", cfg.UI.DefaultPane)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected theme 'auto', got %q", cfg.UI.Theme)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.UI.DefaultPane != "launcher" {
		t.Errorf("expected default config, got pane %q", cfg.UI.DefaultPane)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
database_path: ~/lifeos/data.db
ui:
  default_pane: health
  theme: dark
launcher:
  order: [health, tasks]
  hidden: [feed]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.DefaultPane != "health" {
		t.Errorf("default pane %q", cfg.UI.DefaultPane)
	}
	if filepath.IsAbs(cfg.DatabasePath) == false {
		t.Errorf("~ not expanded in database path: %q", cfg.DatabasePath)
	}
	if len(cfg.Launcher.Order) != 2 || cfg.Launcher.Order[0] != "health" {
		t.Errorf("launcher order: %v", cfg.Launcher.Order)
	}
	if !cfg.AppHidden("feed") || cfg.AppHidden("health") {
		t.Error("hidden apps misread")
	}
}

func TestLoadFrom_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("ui: [not a map"), 0o644)

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.DefaultPane = "finance"
	cfg.Launcher.Order = []string{"finance", "chat"}

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.UI.DefaultPane != "finance" {
		t.Errorf("round trip lost pane: %q", loaded.UI.DefaultPane)
	}
	if len(loaded.Launcher.Order) != 2 {
		t.Errorf("round trip lost order: %v", loaded.Launcher.Order)
	}
}

func TestResolvedDatabasePath(t *testing.T) {
	cfg := Config{DatabasePath: "/tmp/x.db"}
	if cfg.ResolvedDatabasePath() != "/tmp/x.db" {
		t.Error("explicit path not honored")
	}
	if DefaultConfig().ResolvedDatabasePath() == "" {
		t.Error("default path empty")
	}
}
