package pipeline

import (
	"time"

	"clipforge/internal/effects"
	"clipforge/internal/presence"
	"clipforge/internal/semantic"
)

// Options configures one analysis run. Zero values fall back to config.
type Options struct {
	DurationsSec []float64
	StrideSec    float64
	MaxClips     int
	MinGapSec    float64

	MinDurSec float64
	MaxDurSec float64

	SampleIntervalSec   float64
	ConfidenceThreshold float64

	// Transcribe disables the transcriber collaborator when false
	Transcribe bool
	// Profile names the renderer output profile the plan targets
	Profile string
}

// RenderInstruction is one renderer-facing step: an effect interval plus a
// suggested ffmpeg filter expression for its foreground treatment.
type RenderInstruction struct {
	StartSec float64        `json:"start_sec"`
	EndSec   float64        `json:"end_sec"`
	Effect   effects.Type   `json:"effect"`
	Filter   string         `json:"filter,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// ClipPlan is the complete selection and treatment decision for one clip
type ClipPlan struct {
	ID          string              `json:"id"`
	StartSec    float64             `json:"start_sec"`
	EndSec      float64             `json:"end_sec"`
	DurationSec float64             `json:"duration_sec"`
	Score       float64             `json:"score"`
	People      []presence.Segment  `json:"people,omitempty"`
	Effects     []effects.Segment   `json:"effects"`
	Render      []RenderInstruction `json:"render"`
}

// Result is the full output of one analysis pass, handed to the renderer
type Result struct {
	ID          string                     `json:"id"`
	Source      string                     `json:"source"`
	DurationSec float64                    `json:"duration_sec"`
	Profile     string                     `json:"profile,omitempty"`
	Silences    []semantic.SilenceInterval `json:"silences,omitempty"`
	Clips       []ClipPlan                 `json:"clips"`
	CreatedAt   time.Time                  `json:"created_at"`
}
