// Package analysis implements the engagement scorer: it fuses audio energy
// and visual motion into a single score series over a sliding window grid and
// answers best-window and top-K non-overlapping window queries.
package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"clipforge/internal/media"
)

// TimeSeries is an ordered sequence of per-window scores over a common
// window/stride grid. It always has at least one entry; empty input collapses
// to a single zero so downstream scoring never sees an undefined series.
type TimeSeries struct {
	Values    []float64
	WindowSec float64
	StrideSec float64
}

// Source holds the decoded signals one analysis pass works from, so a single
// decode can serve several window durations.
type Source struct {
	Samples    []float64
	SampleRate int
	// FrameDiffs is the mean absolute grayscale difference between each
	// frame and its predecessor, in decode order. Empty when the video
	// stream could not be decoded.
	FrameDiffs []float64
}

// Extractor decodes media into engagement signals
type Extractor struct {
	logger  zerolog.Logger
	decoder *media.Decoder
}

// NewExtractor creates a signal extractor over the given decoder
func NewExtractor(logger zerolog.Logger, decoder *media.Decoder) *Extractor {
	return &Extractor{
		logger:  logger.With().Str("component", "signal-extractor").Logger(),
		decoder: decoder,
	}
}

// Load decodes path once into a Source. Audio failures are fatal; video
// failures degrade to an empty diff sequence and an all-zero motion series.
func (e *Extractor) Load(ctx context.Context, path string) (*Source, error) {
	samples, rate, err := e.decoder.Waveform(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("decode waveform: %w", err)
	}

	src := &Source{Samples: samples, SampleRate: rate}

	var prev []byte
	err = e.decoder.EachFrame(ctx, path, func(index int, pixels []byte) error {
		if prev == nil {
			prev = append([]byte(nil), pixels...)
			return nil
		}
		src.FrameDiffs = append(src.FrameDiffs, meanAbsDiff(prev, pixels))
		copy(prev, pixels)
		return nil
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("input", path).
			Msg("video decode failed, motion series degrades to zero")
		src.FrameDiffs = nil
	}

	e.logger.Debug().
		Int("samples", len(src.Samples)).
		Int("frame_diffs", len(src.FrameDiffs)).
		Msg("signals loaded")

	return src, nil
}

// EnergySeries computes windowed RMS energy over the waveform. Windows that
// would run past the end of the waveform are skipped, not zero-padded; if no
// full window fits, the series is a single zero.
func EnergySeries(src *Source, windowSec, strideSec float64) (TimeSeries, error) {
	if windowSec <= 0 {
		return TimeSeries{}, fmt.Errorf("window length must be positive, got %g", windowSec)
	}
	if strideSec <= 0 {
		return TimeSeries{}, fmt.Errorf("stride must be positive, got %g", strideSec)
	}

	ts := TimeSeries{WindowSec: windowSec, StrideSec: strideSec}

	win := int(windowSec * float64(src.SampleRate))
	hop := int(strideSec * float64(src.SampleRate))
	if win < 1 {
		win = 1
	}
	if hop < 1 {
		hop = 1
	}

	for s := 0; s+win <= len(src.Samples); s += hop {
		ts.Values = append(ts.Values, rms(src.Samples[s:s+win]))
	}
	if len(ts.Values) == 0 {
		ts.Values = []float64{0}
	}

	return ts, nil
}

// MotionSeries re-bins the per-frame diff sequence into exactly bins buckets
// by proportional index partitioning, averaging each bucket. The partition is
// index-based rather than timestamp-based, so when the audio grid drops a
// short tail window the two series are not perfectly time-aligned; changing
// that would change which frames score against which audio window.
func MotionSeries(src *Source, bins int, windowSec, strideSec float64) TimeSeries {
	if bins < 1 {
		bins = 1
	}
	ts := TimeSeries{
		Values:    make([]float64, bins),
		WindowSec: windowSec,
		StrideSec: strideSec,
	}

	diffs := src.FrameDiffs
	if len(diffs) == 0 {
		return ts
	}
	if bins == 1 {
		ts.Values[0] = mean(diffs)
		return ts
	}

	for i := 0; i < bins; i++ {
		lo := i * len(diffs) / bins
		hi := (i + 1) * len(diffs) / bins
		if hi > lo {
			ts.Values[i] = mean(diffs[lo:hi])
		}
	}
	return ts
}

func rms(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func meanAbsDiff(a, b []byte) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < n; i++ {
		d := int64(a[i]) - int64(b[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / float64(n)
}
