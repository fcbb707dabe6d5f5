// Package presence samples a person-detection collaborator at fixed intervals
// and merges the samples into contiguous presence segments.
package presence

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"clipforge/internal/media"
)

// Detection is one person found in a frame
type Detection struct {
	X, Y, W, H int
	Confidence float64
}

// Frame is a sampled grayscale frame handed to the detector
type Frame struct {
	TimeSec float64
	Width   int
	Height  int
	Pixels  []byte
}

// Detector is the person/face detection collaborator. Implementations are
// external to the engine; the segmenter only consumes counts and confidences.
type Detector interface {
	Detect(ctx context.Context, frame Frame) ([]Detection, error)
}

// DetectorFunc adapts a function to the Detector interface
type DetectorFunc func(ctx context.Context, frame Frame) ([]Detection, error)

func (f DetectorFunc) Detect(ctx context.Context, frame Frame) ([]Detection, error) {
	return f(ctx, frame)
}

// Sample is the per-frame presence observation
type Sample struct {
	TimeSec     float64
	PersonCount int
	Confidence  float64
}

// Segment is a maximal run of consecutive samples with PersonCount > 0.
// PersonCount and Confidence are the running maxima over the run.
type Segment struct {
	StartSec    float64 `json:"start_sec"`
	EndSec      float64 `json:"end_sec"`
	PersonCount int     `json:"person_count"`
	Confidence  float64 `json:"confidence"`
}

// Segmenter samples frames through the decoder and merges detector output
type Segmenter struct {
	logger   zerolog.Logger
	decoder  *media.Decoder
	detector Detector
}

// NewSegmenter creates a presence segmenter. detector may be nil, in which
// case segmentation degrades to no segments.
func NewSegmenter(logger zerolog.Logger, decoder *media.Decoder, detector Detector) *Segmenter {
	return &Segmenter{
		logger:   logger.With().Str("component", "presence-segmenter").Logger(),
		decoder:  decoder,
		detector: detector,
	}
}

// SegmentPresence samples path every sampleInterval seconds and returns the
// merged presence segments. Detections at or below confidenceThreshold are
// ignored for the count; the confidence recorded is the maximum observed.
func (s *Segmenter) SegmentPresence(ctx context.Context, path string, sampleInterval, confidenceThreshold float64) ([]Segment, error) {
	if sampleInterval <= 0 {
		return nil, fmt.Errorf("sample interval must be positive, got %g", sampleInterval)
	}

	if s.detector == nil {
		s.logger.Warn().Msg("no person detector configured, skipping presence analysis")
		return nil, nil
	}

	var samples []Sample
	err := s.decoder.SampleFrames(ctx, path, sampleInterval, func(index int, pixels []byte) error {
		frame := Frame{
			TimeSec: float64(index) * sampleInterval,
			Width:   media.AnalysisFrameWidth,
			Height:  media.AnalysisFrameHeight,
			Pixels:  pixels,
		}

		detections, err := s.detector.Detect(ctx, frame)
		if err != nil {
			return fmt.Errorf("detector failed at %.1fs: %w", frame.TimeSec, err)
		}

		samples = append(samples, toSample(frame.TimeSec, detections, confidenceThreshold))
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn().Err(err).Str("input", path).
			Msg("presence sampling failed, proceeding without segments")
		return nil, nil
	}

	segments := MergeSamples(samples)
	s.logger.Info().
		Int("samples", len(samples)).
		Int("segments", len(segments)).
		Msg("presence segmentation complete")

	return segments, nil
}

func toSample(timeSec float64, detections []Detection, threshold float64) Sample {
	sample := Sample{TimeSec: timeSec}
	for _, d := range detections {
		if d.Confidence > threshold {
			sample.PersonCount++
		}
		if d.Confidence > sample.Confidence {
			sample.Confidence = d.Confidence
		}
	}
	return sample
}
