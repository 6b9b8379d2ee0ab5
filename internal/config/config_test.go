package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extract.MaxDepth != 3 {
		t.Errorf("expected max_depth 3, got %d", cfg.Extract.MaxDepth)
	}
	if cfg.Extract.Output != "carve.txt" {
		t.Errorf("expected output carve.txt, got %s", cfg.Extract.Output)
	}
	if cfg.Extract.EntryFile != "" {
		t.Errorf("expected empty entry_file, got %s", cfg.Extract.EntryFile)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"negative depth", func(c *Config) { c.Extract.MaxDepth = -1 }, true},
		{"empty output", func(c *Config) { c.Extract.Output = "" }, true},
		{"zero depth", func(c *Config) { c.Extract.MaxDepth = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v is not ErrInvalidConfig", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	loaded := &Config{}
	loaded.Extract.EntryFile = "src/main.c"

	merged := Merge(loaded, DefaultConfig())

	if merged.Extract.EntryFile != "src/main.c" {
		t.Errorf("loaded entry_file lost: %s", merged.Extract.EntryFile)
	}
	if merged.Extract.MaxDepth != 3 {
		t.Errorf("default max_depth not applied: %d", merged.Extract.MaxDepth)
	}
	if merged.Extract.Output != "carve.txt" {
		t.Errorf("default output not applied: %s", merged.Extract.Output)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Extract.EntryFile = "src/main.c"
	cfg.Extract.MaxDepth = 5
	cfg.Scan.Exclude = []string{"testdata"}

	if _, err := Save(tmpDir, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Extract.EntryFile != "src/main.c" {
		t.Errorf("entry_file = %s, want src/main.c", loaded.Extract.EntryFile)
	}
	if loaded.Extract.MaxDepth != 5 {
		t.Errorf("max_depth = %d, want 5", loaded.Extract.MaxDepth)
	}
	if len(loaded.Scan.Exclude) != 1 || loaded.Scan.Exclude[0] != "testdata" {
		t.Errorf("exclude = %v, want [testdata]", loaded.Scan.Exclude)
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Extract.MaxDepth != 3 {
		t.Errorf("missing config did not fall back to defaults: %+v", cfg)
	}
}

func TestFindConfigDirWalksUp(t *testing.T) {
	tmpDir := t.TempDir()
	carveDir := filepath.Join(tmpDir, ConfigDirName)
	if err := os.Mkdir(carveDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindConfigDir(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != carveDir {
		t.Errorf("FindConfigDir = %q, want %q", got, carveDir)
	}
}

func TestSaveDefaultRefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := SaveDefault(tmpDir); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := SaveDefault(tmpDir); err == nil {
		t.Error("second save did not fail")
	}
}
