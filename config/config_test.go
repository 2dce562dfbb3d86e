package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Audio.Volume != 1.0 {
		t.Errorf("expected volume 1.0, got %f", cfg.Audio.Volume)
	}
	if cfg.CoreOptions == nil {
		t.Error("expected a non-nil CoreOptions map")
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.json")

	data := struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}{Name: "test", Value: 42}

	if err := AtomicWriteJSON(path, data); err != nil {
		t.Fatalf("AtomicWriteJSON failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	var result struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	if err := ReadJSON(path, &result); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if result.Name != data.Name || result.Value != data.Value {
		t.Errorf("data mismatch: expected %+v, got %+v", data, result)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up")
	}
}

func TestSetAndGetOption(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetOption("test_core", "difficulty", "hard")

	opts := cfg.OptionsFor("test_core")
	if opts["difficulty"] != "hard" {
		t.Errorf("expected difficulty=hard, got %q", opts["difficulty"])
	}

	if cfg.OptionsFor("missing_core") != nil {
		t.Error("expected nil for a core with no saved options")
	}
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	tempDir := t.TempDir()
	SetAppName(filepath.Base(tempDir))
	os.Setenv("XDG_DATA_HOME", tempDir)
	defer os.Unsetenv("XDG_DATA_HOME")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Version != DefaultConfig().Version {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	tempDir := t.TempDir()
	SetAppName(filepath.Base(tempDir))
	os.Setenv("XDG_DATA_HOME", tempDir)
	defer os.Unsetenv("XDG_DATA_HOME")

	cfg := DefaultConfig()
	cfg.SetOption("test_core", "palette", "ntsc")
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OptionsFor("test_core")["palette"] != "ntsc" {
		t.Errorf("expected saved option to round-trip, got %+v", loaded.CoreOptions)
	}
}
