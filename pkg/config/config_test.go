package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()

	// Point the home directory at the temp dir
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	cfg.DefaultSource = "courses.csv"
	cfg.AccentColor = "42"
	cfg.PlaceholderTitle = "(missing)"
	cfg.RecentSources = []string{"courses.csv", "https://example.edu/courses.csv"}

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".courseplanner.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if diff := cmp.Diff(cfg, loadedCfg); diff != "" {
		t.Errorf("loaded config does not match saved config (-saved +loaded):\n%s", diff)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".courseplanner.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestRememberSource(t *testing.T) {
	cfg := &AppConfig{}

	for _, s := range []string{"a.csv", "b.csv", "c.csv", "a.csv", "", "d.csv", "e.csv", "f.csv"} {
		cfg.RememberSource(s)
	}

	want := []string{"f.csv", "e.csv", "d.csv", "a.csv", "c.csv"}
	if diff := cmp.Diff(want, cfg.RecentSources); diff != "" {
		t.Errorf("recent sources mismatch (-want +got):\n%s", diff)
	}
}
