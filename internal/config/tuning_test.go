package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsPopulatesEveryField(t *testing.T) {
	cfg := Defaults()

	if cfg.WindowSize == nil || *cfg.WindowSize <= 0 {
		t.Fatal("WindowSize must be set and positive")
	}
	if cfg.MinTotalZChange == nil || *cfg.MinTotalZChange <= 0 {
		t.Fatal("MinTotalZChange must be set and positive")
	}
	if cfg.RDPEpsilon == nil || *cfg.RDPEpsilon <= 0 {
		t.Fatal("RDPEpsilon must be set and positive")
	}
	if cfg.EdgeConnectionRadius == nil || *cfg.EdgeConnectionRadius <= 0 {
		t.Fatal("EdgeConnectionRadius must be set and positive")
	}
}

func TestMustLoadDefaultConfigFallsBackWhenFileMissing(t *testing.T) {
	// DefaultConfigPath is relative to the repo root; under `go test` for
	// this package, cwd is internal/config, so the file is absent and
	// MustLoadDefaultConfig must fall back to Defaults() rather than panic.
	cfg := MustLoadDefaultConfig()
	if cfg.GetWindowSize() != Defaults().GetWindowSize() {
		t.Errorf("expected fallback to canonical defaults, got WindowSize=%d", cfg.GetWindowSize())
	}
}

func TestLoadTuningConfigMergesPartialOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	if err := os.WriteFile(path, []byte(`{"rdp_epsilon": 0.75, "min_stair_points": 8}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}

	if got := cfg.GetRDPEpsilon(); got != 0.75 {
		t.Errorf("RDPEpsilon override not applied: got %f", got)
	}
	if got := cfg.GetMinStairPoints(); got != 8 {
		t.Errorf("MinStairPoints override not applied: got %d", got)
	}
	// Untouched fields retain their canonical default.
	if got, want := cfg.GetFloorHeight(), Defaults().GetFloorHeight(); got != want {
		t.Errorf("FloorHeight should be untouched default: got %f, want %f", got, want)
	}
}

func TestLoadTuningConfigRejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte(`rdp_epsilon: 0.75`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected error for non-.json config file")
	}
}

func TestLoadTuningConfigRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	big := make([]byte, 2*1024*1024)
	for i := range big {
		big[i] = ' '
	}
	if err := os.WriteFile(path, big, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected error for oversized config file")
	}
}
