package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("exists = true for absent file")
	}
	if path == "" {
		t.Fatal("resolved path empty")
	}
	if cfg.Update.Binary != "dotnet" {
		t.Fatalf("Update.Binary = %q, want dotnet", cfg.Update.Binary)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("logging defaults = %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if !filepath.IsAbs(cfg.Paths.WorkDir) {
		t.Fatalf("WorkDir not absolute: %q", cfg.Paths.WorkDir)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[paths]
work_dir = "` + filepath.Join(dir, "work") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[update]
binary = "  dotnet  "
timeout_seconds = -5

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for written file")
	}
	if cfg.Update.Binary != "dotnet" {
		t.Fatalf("Update.Binary = %q, want trimmed dotnet", cfg.Update.Binary)
	}
	if cfg.Update.TimeoutSeconds != defaultUpdateTimeout {
		t.Fatalf("TimeoutSeconds = %d, want default on non-positive input", cfg.Update.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %q/%q, want lowercased", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidLevel(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[logging]
level = "verbose"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(configPath); err == nil {
		t.Fatal("expected error for invalid logging.level")
	}
}

func TestValidateRejectsSharedDirectories(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	cfg.Paths.LogDir = cfg.Paths.WorkDir
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when work_dir equals log_dir")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Corpus.DatabasePath = filepath.Join(dir, "db", "corpus.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, path := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir, filepath.Join(dir, "db")} {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %s missing: %v", path, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[update]") {
		t.Fatal("sample config missing [update] section")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	expanded, err := ExpandPath("~/gloss-test")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if expanded != filepath.Join(home, "gloss-test") {
		t.Fatalf("expanded = %q", expanded)
	}
}
