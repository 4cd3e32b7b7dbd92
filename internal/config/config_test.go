package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNoFileReturnsDefaults(t *testing.T) {
	cfg, found, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found != "" {
		t.Errorf("found = %q, want empty", found)
	}
	if cfg.FailOn != "error" || cfg.TimeoutSeconds != 30 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	data := `{"linters": ["eslint", "tsc"], "failOn": "warning", "ignore": [{"rule": "eslint/semi", "reason": "legacy"}]}`
	path := filepath.Join(dir, ".lintmesh.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found != path {
		t.Errorf("found = %q, want %q", found, path)
	}
	if len(cfg.Linters) != 2 || cfg.FailOn != "warning" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0].Rule != "eslint/semi" {
		t.Errorf("ignore = %+v", cfg.Ignore)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("unset fields must keep defaults, timeout = %d", cfg.TimeoutSeconds)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	data := "linters:\n  - biome\ntimeoutSeconds: 60\nexclude:\n  - vendor\n"
	if err := os.WriteFile(filepath.Join(dir, ".lintmesh.yml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Linters) != 1 || cfg.Linters[0] != "biome" {
		t.Errorf("linters = %v", cfg.Linters)
	}
	if cfg.TimeoutSeconds != 60 {
		t.Errorf("timeoutSeconds = %d", cfg.TimeoutSeconds)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "vendor" {
		t.Errorf("exclude overrides defaults wholesale, got %v", cfg.Exclude)
	}
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "packages", "web", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ".lintmesh.json")
	if err := os.WriteFile(path, []byte(`{"failOn": "info"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found != path {
		t.Errorf("found = %q, want %q", found, path)
	}
	if cfg.FailOn != "info" {
		t.Errorf("failOn = %q", cfg.FailOn)
	}
}

func TestLoadNearestFileWins(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "app")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".lintmesh.json"), []byte(`{"failOn": "error"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(child, ".lintmesh.json"), []byte(`{"failOn": "warning"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(child)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FailOn != "warning" {
		t.Errorf("failOn = %q, want the nearest file's value", cfg.FailOn)
	}
}

func TestLoadMalformedIsLoud(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".lintmesh.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, found, err := Load(dir)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if found == "" {
		t.Error("the offending file must be named")
	}
}
