package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.StrideSec != 1.0 {
		t.Errorf("default stride = %g, want 1.0", cfg.Analysis.StrideSec)
	}
	if len(cfg.Analysis.DurationsSec) == 0 {
		t.Error("default durations must not be empty")
	}
	if _, err := cfg.Profile("tiktok"); err != nil {
		t.Errorf("default tiktok profile missing: %v", err)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipforge.yaml")
	yaml := `
analysis:
  stride_sec: 0.5
  durations_sec: [15, 25]
  max_clips: 5
  min_gap_sec: 3
semantic:
  min_dur_sec: 10
  max_dur_sec: 60
presence:
  sample_interval_sec: 1.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Analysis.StrideSec != 0.5 {
		t.Errorf("stride = %g, want 0.5", cfg.Analysis.StrideSec)
	}
	if cfg.Analysis.MaxClips != 5 {
		t.Errorf("max clips = %d, want 5", cfg.Analysis.MaxClips)
	}
	if cfg.Semantic.MaxDurSec != 60 {
		t.Errorf("max dur = %g, want 60", cfg.Semantic.MaxDurSec)
	}
	// Unrelated defaults survive a partial file
	if cfg.Semantic.WhisperModel != "tiny" {
		t.Errorf("whisper model = %q, want default tiny", cfg.Semantic.WhisperModel)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"zero_stride":     "analysis:\n  stride_sec: 0\n",
		"inverted_bounds": "semantic:\n  min_dur_sec: 100\n  max_dur_sec: 50\n",
		"bad_duration":    "analysis:\n  durations_sec: [20, -5]\n",
	}

	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clipforge.yaml")
			if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipforge.yaml")
	cfg := defaultConfig()
	cfg.Analysis.MaxClips = 7

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Analysis.MaxClips != 7 {
		t.Errorf("round-tripped max clips = %d, want 7", loaded.Analysis.MaxClips)
	}
}

func TestProfileUnknown(t *testing.T) {
	cfg := defaultConfig()
	if _, err := cfg.Profile("betamax"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestConfigContextRoundTrip(t *testing.T) {
	cfg := defaultConfig()
	cfg.WorkDir = "/tmp/elsewhere"

	ctx := WithConfig(context.Background(), cfg)
	if got := FromContext(ctx); got.WorkDir != "/tmp/elsewhere" {
		t.Errorf("work dir = %q, want /tmp/elsewhere", got.WorkDir)
	}

	// Missing config falls back to defaults
	if got := FromContext(context.Background()); got.Analysis.StrideSec != 1.0 {
		t.Errorf("fallback stride = %g, want 1.0", got.Analysis.StrideSec)
	}
}
