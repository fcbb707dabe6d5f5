// Package pipeline wires the selection and planning components into a
// single-pass, synchronous engine. Each stage fully consumes its input before
// the next runs; collaborators that are unavailable degrade rather than fail
// the pass.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"clipforge/internal/analysis"
	"clipforge/internal/config"
	"clipforge/internal/effects"
	"clipforge/internal/ffmpeg"
	"clipforge/internal/media"
	"clipforge/internal/presence"
	"clipforge/internal/semantic"
)

// Engine is the content selection and effect planning engine
type Engine struct {
	logger      zerolog.Logger
	cfg         *config.Config
	exec        *ffmpeg.Executor
	decoder     *media.Decoder
	extractor   *analysis.Extractor
	scorer      *analysis.Scorer
	silences    *semantic.SilenceDetector
	transcriber semantic.Transcriber
	segmenter   *presence.Segmenter
}

// New creates an engine from config. detector supplies person detection and
// may be nil; presence analysis then degrades to an all-full-frame plan.
func New(logger zerolog.Logger, cfg *config.Config, detector presence.Detector) (*Engine, error) {
	exec, err := ffmpeg.New(logger, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	decoder := media.NewDecoder(logger, exec, cfg.TempDir)
	extractor := analysis.NewExtractor(logger, decoder)

	return &Engine{
		logger:      logger.With().Str("component", "pipeline").Logger(),
		cfg:         cfg,
		exec:        exec,
		decoder:     decoder,
		extractor:   extractor,
		scorer:      analysis.NewScorer(logger, extractor),
		silences:    semantic.NewSilenceDetector(logger, exec, cfg.Semantic.SilenceNoise, cfg.Semantic.SilenceMinSec),
		transcriber: semantic.NewWhisperTranscriber(logger, cfg.Semantic.WhisperModel, cfg.TempDir),
		segmenter:   presence.NewSegmenter(logger, decoder, detector),
	}, nil
}

// Executor exposes the underlying ffmpeg executor for CLI extras like clip
// extraction.
func (e *Engine) Executor() *ffmpeg.Executor {
	return e.exec
}

// BestWindow returns the most engaging windowSec-long interval of path
func (e *Engine) BestWindow(ctx context.Context, path string, windowSec, strideSec float64) (float64, float64, error) {
	return e.scorer.BestWindow(ctx, path, windowSec, strideSec)
}

// TopWindowsMulti returns up to maxClips non-overlapping engaging windows
func (e *Engine) TopWindowsMulti(ctx context.Context, path string, durations []float64, strideSec float64, maxClips int, minGapSec float64) ([]analysis.ScoredWindow, error) {
	return e.scorer.TopWindowsMulti(ctx, path, durations, strideSec, maxClips, minGapSec)
}

// PickIdeaEndpoint chooses a duration-bounded end time on a sentence or
// silence boundary.
func (e *Engine) PickIdeaEndpoint(transcript *semantic.Transcript, silences []semantic.SilenceInterval, startHint, minDur, maxDur float64) (float64, error) {
	return semantic.PickIdeaEndpoint(transcript, silences, startHint, minDur, maxDur)
}

// SegmentPresence samples person presence over the whole source
func (e *Engine) SegmentPresence(ctx context.Context, path string, sampleInterval, confidenceThreshold float64) ([]presence.Segment, error) {
	return e.segmenter.SegmentPresence(ctx, path, sampleInterval, confidenceThreshold)
}

// PlanEffects builds the effect timeline for a clip of totalDuration
func (e *Engine) PlanEffects(totalDuration float64, people []presence.Segment) ([]effects.Segment, error) {
	return effects.Plan(totalDuration, people)
}

// Analyze runs the full selection pass: score windows, settle endpoints on
// idea boundaries, segment presence, and plan effects per clip.
func (e *Engine) Analyze(ctx context.Context, input string, opts Options) (*Result, error) {
	if input == "" {
		return nil, fmt.Errorf("input path cannot be empty")
	}
	opts = e.withDefaults(opts)

	info, err := e.decoder.Probe(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to probe input: %w", err)
	}

	e.logger.Info().
		Str("input", input).
		Float64("duration", info.DurationSec).
		Floats64("durations", opts.DurationsSec).
		Int("max_clips", opts.MaxClips).
		Msg("starting analysis")

	windows, err := e.scorer.TopWindowsMulti(ctx, input, opts.DurationsSec, opts.StrideSec, opts.MaxClips, opts.MinGapSec)
	if err != nil {
		return nil, fmt.Errorf("window selection failed: %w", err)
	}

	var transcript *semantic.Transcript
	if opts.Transcribe {
		transcript = e.transcriber.Transcribe(ctx, input)
	}
	silences := e.silences.Detect(ctx, input)

	people, err := e.segmenter.SegmentPresence(ctx, input, opts.SampleIntervalSec, opts.ConfidenceThreshold)
	if err != nil {
		return nil, fmt.Errorf("presence segmentation failed: %w", err)
	}

	result := &Result{
		ID:          uuid.NewString(),
		Source:      input,
		DurationSec: info.DurationSec,
		Profile:     opts.Profile,
		Silences:    silences,
		CreatedAt:   time.Now().UTC(),
	}

	for i, window := range windows {
		clip, err := e.planClip(i, window, info.DurationSec, transcript, silences, people, opts)
		if err != nil {
			return nil, err
		}
		result.Clips = append(result.Clips, clip)
	}

	e.logger.Info().
		Str("result", result.ID).
		Int("clips", len(result.Clips)).
		Msg("analysis complete")

	return result, nil
}

// planClip converts one accepted window into a final clip plan
func (e *Engine) planClip(index int, window analysis.ScoredWindow, sourceDuration float64, transcript *semantic.Transcript, silences []semantic.SilenceInterval, people []presence.Segment, opts Options) (ClipPlan, error) {
	endSec, err := semantic.PickIdeaEndpoint(transcript, silences, window.StartSec, opts.MinDurSec, opts.MaxDurSec)
	if err != nil {
		return ClipPlan{}, fmt.Errorf("endpoint selection failed: %w", err)
	}
	// The endpoint honors the duration bounds; the source may still end first
	if sourceDuration > 0 && endSec > sourceDuration {
		endSec = sourceDuration
	}
	if endSec <= window.StartSec {
		endSec = window.StartSec + window.DurationSec
	}

	clipDuration := endSec - window.StartSec
	clipPeople := presence.Window(people, window.StartSec, endSec)

	plan, err := effects.Plan(clipDuration, clipPeople)
	if err != nil {
		return ClipPlan{}, fmt.Errorf("effect planning failed: %w", err)
	}

	clip := ClipPlan{
		ID:          fmt.Sprintf("clip_%d", index),
		StartSec:    window.StartSec,
		EndSec:      endSec,
		DurationSec: clipDuration,
		Score:       window.Score,
		People:      clipPeople,
		Effects:     plan,
		Render:      renderInstructions(plan),
	}

	e.logger.Debug().
		Str("clip", clip.ID).
		Float64("start", clip.StartSec).
		Float64("end", clip.EndSec).
		Int("effects", len(clip.Effects)).
		Msg("clip planned")

	return clip, nil
}

func (e *Engine) withDefaults(opts Options) Options {
	if len(opts.DurationsSec) == 0 {
		opts.DurationsSec = e.cfg.Analysis.DurationsSec
	}
	if opts.StrideSec <= 0 {
		opts.StrideSec = e.cfg.Analysis.StrideSec
	}
	if opts.MaxClips <= 0 {
		opts.MaxClips = e.cfg.Analysis.MaxClips
	}
	if opts.MinGapSec <= 0 {
		opts.MinGapSec = e.cfg.Analysis.MinGapSec
	}
	if opts.MinDurSec <= 0 {
		opts.MinDurSec = e.cfg.Semantic.MinDurSec
	}
	if opts.MaxDurSec <= 0 {
		opts.MaxDurSec = e.cfg.Semantic.MaxDurSec
	}
	if opts.SampleIntervalSec <= 0 {
		opts.SampleIntervalSec = e.cfg.Presence.SampleIntervalSec
	}
	if opts.ConfidenceThreshold <= 0 {
		opts.ConfidenceThreshold = e.cfg.Presence.ConfidenceThreshold
	}
	return opts
}
