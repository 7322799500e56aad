package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DUKE_PATH", dir)

	cfg, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Calendar != "Duke" {
		t.Errorf("Expected calendar 'Duke', got '%s'", cfg.Calendar)
	}
	if cfg.DataFile != filepath.Join(dir, "duke.txt") {
		t.Errorf("Expected data file under DUKE_PATH, got '%s'", cfg.DataFile)
	}
}

func TestLoadWithComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		// where tasks live
		"data_file": "/tmp/tasks.txt",
		"calendar": "Personal",
	}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataFile != "/tmp/tasks.txt" {
		t.Errorf("Expected data file '/tmp/tasks.txt', got '%s'", cfg.DataFile)
	}
	if cfg.Calendar != "Personal" {
		t.Errorf("Expected calendar 'Personal', got '%s'", cfg.Calendar)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DUKE_PATH", dir)
	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}

	if err := Save(path, &Config{Calendar: "Work"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Calendar != "Work" {
		t.Errorf("Expected calendar 'Work', got '%s'", cfg.Calendar)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"calendar": `), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for truncated config")
	}
}
