package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gamekeeper/gamekeeper/pkg/config"
)

func TestLoadConfig_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gamekeeper.config.json")

	data := []byte(`{
		"version": "1.0",
		"pattern": "level",
		"sourceExtension": ".rs",
		"buildCommand": ["cargo", "build"]
	}`)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	manager := config.NewManager()
	cfg, err := manager.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Pattern != "level" {
		t.Errorf("Pattern = %q, want level", cfg.Pattern)
	}
	if cfg.SourceExtension != ".rs" {
		t.Errorf("SourceExtension = %q, want .rs", cfg.SourceExtension)
	}
	if len(cfg.BuildCommand) != 2 || cfg.BuildCommand[0] != "cargo" {
		t.Errorf("BuildCommand = %v", cfg.BuildCommand)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gamekeeper.config.yaml")

	data := []byte(`version: "1.0"
pattern: game
sourceExtension: .go
buildCommand:
  - go
  - build
notifications:
  enabled: true
`)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		t.Fatal(err)
	}

	manager := config.NewManager()
	cfg, err := manager.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load YAML config: %v", err)
	}

	if cfg.Pattern != "game" {
		t.Errorf("Pattern = %q", cfg.Pattern)
	}
	if cfg.Notifications == nil || !cfg.Notifications.Enabled {
		t.Error("notifications not parsed from YAML")
	}
}

func TestLoadConfig_FillsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gamekeeper.config.json")

	if err := os.WriteFile(configPath, []byte(`{"pattern": "quest"}`), 0644); err != nil {
		t.Fatal(err)
	}

	manager := config.NewManager()
	cfg, err := manager.LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.SourceExtension != ".go" {
		t.Errorf("SourceExtension default = %q", cfg.SourceExtension)
	}
	if len(cfg.BuildCommand) != 2 || cfg.BuildCommand[0] != "go" {
		t.Errorf("BuildCommand default = %v", cfg.BuildCommand)
	}
	if cfg.Watch == nil || cfg.Watch.SettlingDelayMs <= 0 {
		t.Error("watch defaults not applied")
	}
}

func TestLoadConfig_InvalidExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gamekeeper.config.json")

	if err := os.WriteFile(configPath, []byte(`{"sourceExtension": "go"}`), 0644); err != nil {
		t.Fatal(err)
	}

	manager := config.NewManager()
	if _, err := manager.LoadConfig(configPath); err == nil {
		t.Fatal("expected validation error for extension without dot")
	}
}

func TestLoadConfig_Garbage(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gamekeeper.config.json")

	if err := os.WriteFile(configPath, []byte("{{{not parseable"), 0644); err != nil {
		t.Fatal(err)
	}

	manager := config.NewManager()
	if _, err := manager.LoadConfig(configPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	manager := config.NewManager()
	cfg, err := manager.LoadOrDefault(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing config must fall back to defaults: %v", err)
	}

	if cfg.Pattern != "game" {
		t.Errorf("Pattern = %q, want game", cfg.Pattern)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "gamekeeper.config.json")

	manager := config.NewManager()
	original, err := manager.LoadOrDefault(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.SaveConfig(original, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := manager.LoadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Pattern != original.Pattern || loaded.SourceExtension != original.SourceExtension {
		t.Errorf("round trip diverged: %+v vs %+v", loaded, original)
	}
}
