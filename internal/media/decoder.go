// Package media exposes the decoder collaborator the analysis engine reads
// source material through: a mono waveform, downscaled grayscale frames, and
// container metadata. All heavy lifting is delegated to ffmpeg.
package media

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clipforge/internal/ffmpeg"
	"clipforge/pkg/util"
)

// Frames used for motion and presence analysis are downscaled; the signals
// derived from them are resolution-independent.
const (
	AnalysisFrameWidth  = 160
	AnalysisFrameHeight = 90
)

// Decoder turns a media path into analysis-ready signals
type Decoder struct {
	logger  zerolog.Logger
	exec    *ffmpeg.Executor
	tempDir string
}

// NewDecoder creates a decoder backed by the given ffmpeg executor. tempDir
// may be empty to use the system default.
func NewDecoder(logger zerolog.Logger, exec *ffmpeg.Executor, tempDir string) *Decoder {
	return &Decoder{
		logger:  logger.With().Str("component", "media").Logger(),
		exec:    exec,
		tempDir: tempDir,
	}
}

// Probe returns container metadata for path
func (d *Decoder) Probe(ctx context.Context, path string) (*ffmpeg.VideoInfo, error) {
	return d.exec.Probe(ctx, path)
}

// Waveform decodes the audio track of path into a mono float64 waveform in
// [-1, 1] and returns it with its sample rate.
func (d *Decoder) Waveform(ctx context.Context, path string) ([]float64, int, error) {
	tmp, err := util.TempFile(d.tempDir, "clipforge-audio", ".wav")
	if err != nil {
		return nil, 0, fmt.Errorf("create temp wav: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer util.CleanupFiles(tmpPath)

	format := ffmpeg.DefaultAnalysisFormat()
	if err := d.exec.ExtractAudio(ctx, path, tmpPath, format); err != nil {
		return nil, 0, err
	}

	samples, rate, err := decodeWAV(tmpPath)
	if err != nil {
		return nil, 0, err
	}

	d.logger.Debug().
		Int("samples", len(samples)).
		Int("sample_rate", rate).
		Msg("waveform decoded")

	return samples, rate, nil
}

// EachFrame streams every decoded grayscale frame of path to fn. The pixel
// slice is reused between calls.
func (d *Decoder) EachFrame(ctx context.Context, path string, fn func(index int, pixels []byte) error) error {
	opts := ffmpeg.FrameStreamOptions{
		Width:  AnalysisFrameWidth,
		Height: AnalysisFrameHeight,
	}
	return d.exec.StreamGrayFrames(ctx, path, opts, fn)
}

// SampleFrames streams one grayscale frame per intervalSec to fn. Frame i
// corresponds to source time i*intervalSec.
func (d *Decoder) SampleFrames(ctx context.Context, path string, intervalSec float64, fn func(index int, pixels []byte) error) error {
	if intervalSec <= 0 {
		return fmt.Errorf("sample interval must be positive, got %g", intervalSec)
	}
	opts := ffmpeg.FrameStreamOptions{
		Width:     AnalysisFrameWidth,
		Height:    AnalysisFrameHeight,
		SampleFPS: 1.0 / intervalSec,
	}
	return d.exec.StreamGrayFrames(ctx, path, opts, fn)
}
