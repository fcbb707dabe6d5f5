package semantic

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"clipforge/internal/ffmpeg"
)

// SilenceDetector finds silence intervals using ffmpeg's silencedetect
// filter. silencedetect reports through stderr, so detection runs a null-sink
// pass and parses the log lines.
type SilenceDetector struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
	// NoiseDB is the silence threshold in dB (e.g. -30)
	NoiseDB float64
	// MinDurationSec is the shortest silence worth reporting
	MinDurationSec float64
}

// NewSilenceDetector creates a silence detector
func NewSilenceDetector(logger zerolog.Logger, exec *ffmpeg.Executor, noiseDB, minDurationSec float64) *SilenceDetector {
	return &SilenceDetector{
		logger:         logger.With().Str("component", "silence-detector").Logger(),
		exec:           exec,
		NoiseDB:        noiseDB,
		MinDurationSec: minDurationSec,
	}
}

// Detect returns the silence intervals found in input. A failed run degrades
// to no intervals; the endpoint picker has its own fallback.
func (d *SilenceDetector) Detect(ctx context.Context, input string) []SilenceInterval {
	var lines []string
	var mu sync.Mutex

	opts := ffmpeg.RunOptions{
		Args: []string{
			"-i", input,
			"-af", fmt.Sprintf("silencedetect=noise=%gdB:d=%g", d.NoiseDB, d.MinDurationSec),
			"-f", "null",
			"-",
		},
		LogHandler: ffmpeg.CollectStderr(&lines, &mu),
	}

	if err := d.exec.Run(ctx, opts); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		d.logger.Warn().Err(err).Str("input", input).
			Msg("silence detection failed, proceeding without silences")
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	intervals := parseSilenceLines(lines)

	d.logger.Debug().Int("silences", len(intervals)).Msg("silence detection complete")
	return intervals
}

// parseSilenceLines extracts silence intervals from silencedetect stderr
// lines.
func parseSilenceLines(lines []string) []SilenceInterval {
	var intervals []SilenceInterval
	var start float64
	var open bool

	for _, line := range lines {
		if idx := strings.Index(line, "silence_start:"); idx >= 0 {
			value := strings.TrimSpace(line[idx+len("silence_start:"):])
			if s, err := strconv.ParseFloat(firstField(value), 64); err == nil {
				start = s
				open = true
			}
		} else if idx := strings.Index(line, "silence_end:"); idx >= 0 && open {
			value := strings.TrimSpace(line[idx+len("silence_end:"):])
			if end, err := strconv.ParseFloat(firstField(value), 64); err == nil && end > start {
				intervals = append(intervals, SilenceInterval{StartSec: start, EndSec: end})
			}
			open = false
		}
	}

	return intervals
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
