package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Build.Language != "de" {
		t.Errorf("default language = %q, want de", cfg.Build.Language)
	}
	if cfg.Build.MinVariantLength != 5 {
		t.Errorf("default min variant length = %d, want 5", cfg.Build.MinVariantLength)
	}
	if cfg.Build.MinWordCountForVariants != 3 {
		t.Errorf("default min word count = %d, want 3", cfg.Build.MinWordCountForVariants)
	}
	if !cfg.Build.SplitHyphen {
		t.Error("hyphen splitting must default to on")
	}
	if cfg.Server.MaxLimit != 64 {
		t.Errorf("default max limit = %d, want 64", cfg.Server.MaxLimit)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Build.MinVariantLength = 7
	cfg.Build.Stoplist = []string{"von", "the"}
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Build.MinVariantLength != 7 {
		t.Errorf("round-tripped min variant length = %d, want 7", loaded.Build.MinVariantLength)
	}
	if len(loaded.Build.Stoplist) != 2 {
		t.Errorf("round-tripped stoplist = %v", loaded.Build.Stoplist)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	partial := "[build]\nmin_variant_length = 9\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Build.MinVariantLength != 9 {
		t.Errorf("explicit value not applied: %d", loaded.Build.MinVariantLength)
	}
	if loaded.Build.Language != "de" {
		t.Errorf("unset fields must keep their defaults, got language %q", loaded.Build.Language)
	}
	if loaded.Server.MaxLimit != 64 {
		t.Errorf("unset sections must keep their defaults, got max limit %d", loaded.Server.MaxLimit)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/no/such/config.toml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
