package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	WorkDir string `yaml:"work_dir"`
	TempDir string `yaml:"temp_dir"`

	Analysis AnalysisConfig `yaml:"analysis"`
	Semantic SemanticConfig `yaml:"semantic"`
	Presence PresenceConfig `yaml:"presence"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`

	// Output profiles consumed by the external renderer
	Profiles map[string]Profile `yaml:"profiles"`
}

// AnalysisConfig tunes the engagement window scorer
type AnalysisConfig struct {
	StrideSec    float64   `yaml:"stride_sec"`
	DurationsSec []float64 `yaml:"durations_sec"`
	MaxClips     int       `yaml:"max_clips"`
	MinGapSec    float64   `yaml:"min_gap_sec"`
}

// SemanticConfig tunes endpoint picking and its collaborators
type SemanticConfig struct {
	WhisperModel  string  `yaml:"whisper_model"`
	MinDurSec     float64 `yaml:"min_dur_sec"`
	MaxDurSec     float64 `yaml:"max_dur_sec"`
	SilenceNoise  float64 `yaml:"silence_noise_db"`
	SilenceMinSec float64 `yaml:"silence_min_sec"`
}

// PresenceConfig tunes person-presence sampling
type PresenceConfig struct {
	SampleIntervalSec   float64 `yaml:"sample_interval_sec"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

type FFmpegConfig struct {
	Threads int `yaml:"threads"`
}

// Profile describes one output target for the renderer hand-off
type Profile struct {
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	FPS               int     `yaml:"fps"`
	TargetDurationSec float64 `yaml:"target_duration_sec"`
	BackgroundBlur    int     `yaml:"background_blur"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) validate() error {
	if c.Analysis.StrideSec <= 0 {
		return fmt.Errorf("analysis.stride_sec must be positive, got %g", c.Analysis.StrideSec)
	}
	for _, d := range c.Analysis.DurationsSec {
		if d <= 0 {
			return fmt.Errorf("analysis.durations_sec entries must be positive, got %g", d)
		}
	}
	if c.Semantic.MinDurSec > c.Semantic.MaxDurSec {
		return fmt.Errorf("semantic.min_dur_sec %g exceeds max_dur_sec %g", c.Semantic.MinDurSec, c.Semantic.MaxDurSec)
	}
	if c.Presence.SampleIntervalSec <= 0 {
		return fmt.Errorf("presence.sample_interval_sec must be positive, got %g", c.Presence.SampleIntervalSec)
	}
	return nil
}

// Profile returns the named output profile, or an error listing known names
func (c *Config) Profile(name string) (Profile, error) {
	if p, ok := c.Profiles[name]; ok {
		return p, nil
	}
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	return Profile{}, fmt.Errorf("unknown profile %q (have %v)", name, names)
}

func defaultConfig() *Config {
	return &Config{
		WorkDir: "./work",
		TempDir: "",
		Analysis: AnalysisConfig{
			StrideSec:    1.0,
			DurationsSec: []float64{20, 30, 45},
			MaxClips:     3,
			MinGapSec:    5.0,
		},
		Semantic: SemanticConfig{
			WhisperModel:  "tiny",
			MinDurSec:     20.0,
			MaxDurSec:     120.0,
			SilenceNoise:  -30.0,
			SilenceMinSec: 0.4,
		},
		Presence: PresenceConfig{
			SampleIntervalSec:   2.0,
			ConfidenceThreshold: 0.5,
		},
		FFmpeg: FFmpegConfig{
			Threads: 0,
		},
		Profiles: map[string]Profile{
			"tiktok": {Width: 1080, Height: 1920, FPS: 30, TargetDurationSec: 45, BackgroundBlur: 18},
			"reel":   {Width: 1080, Height: 1920, FPS: 30, TargetDurationSec: 60, BackgroundBlur: 25},
			"short":  {Width: 1080, Height: 1920, FPS: 30, TargetDurationSec: 58, BackgroundBlur: 18},
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./clipforge.yaml",
		"./clipforge.yml",
		filepath.Join(os.Getenv("HOME"), ".clipforge", "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return defaultConfig()
}
