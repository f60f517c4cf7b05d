package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/RodCut/internal/model"
)

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", path)
	}
	if !strings.HasSuffix(filepath.Dir(path), ".rodcut") {
		t.Errorf("expected config under .rodcut, got %s", path)
	}
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	problem := model.NewProblem(4, []int{1, 5, 8, 9})
	cfg := model.DefaultAppConfig()
	cfg.Speed = 8
	cfg.Theme = "dark"
	cfg.UnitLength = 250
	cfg.LastProblem = &problem
	cfg.RecentFiles = []string{"/tmp/a.rodcut", "/tmp/b.rodcut"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Speed != 8 {
		t.Errorf("expected Speed=8, got %d", loaded.Speed)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.UnitLength != 250 {
		t.Errorf("expected UnitLength=250, got %f", loaded.UnitLength)
	}
	if loaded.LastProblem == nil || !loaded.LastProblem.Equal(problem) {
		t.Errorf("expected last problem %+v, got %+v", problem, loaded.LastProblem)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Speed != defaults.Speed {
		t.Errorf("expected default speed %d, got %d", defaults.Speed, cfg.Speed)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"speed":42,"theme":"light","recent_files":null,"last_problem":{"rod_length":3,"prices":[1]}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil after loading")
	}
	if cfg.Speed != model.MaxSpeed {
		t.Errorf("expected speed clamped to %d, got %d", model.MaxSpeed, cfg.Speed)
	}
	if cfg.LastProblem != nil {
		t.Error("an invalid last problem should be discarded")
	}
	if cfg.UnitLength != model.DefaultAppConfig().UnitLength {
		t.Errorf("missing fields should keep defaults, got UnitLength=%f", cfg.UnitLength)
	}
}
