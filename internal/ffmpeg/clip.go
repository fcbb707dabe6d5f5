package ffmpeg

import (
	"context"
	"fmt"

	"clipforge/pkg/util"
)

// Default encoding settings for clip extraction
const (
	DefaultCRF        = 23
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)

// ClipOptions defines clip extraction parameters
type ClipOptions struct {
	StartSec  float64
	EndSec    float64
	Output    string
	CopyCodec bool // If true, use -c copy for fast extraction
	CRF       int
}

// ExtractClip cuts a segment from a video. The selection engine only plans
// cuts; this exists so the CLI can optionally materialize them for the
// renderer.
func (e *Executor) ExtractClip(ctx context.Context, input string, opts ClipOptions) error {
	duration := opts.EndSec - opts.StartSec
	if duration <= 0 {
		return fmt.Errorf("invalid clip duration: end must be after start")
	}

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Float64("start", opts.StartSec).
		Float64("duration", duration).
		Msg("extracting clip")

	args := []string{
		"-ss", util.FormatSeconds(opts.StartSec),
		"-i", input,
		"-t", util.FormatSeconds(duration),
	}

	if opts.CopyCodec {
		args = append(args, "-c", "copy")
	} else {
		crf := opts.CRF
		if crf == 0 {
			crf = DefaultCRF
		}
		args = append(args,
			"-c:v", DefaultVideoCodec,
			"-c:a", DefaultAudioCodec,
			"-crf", fmt.Sprintf("%d", crf),
		)
	}

	args = append(args, opts.Output)

	runOpts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("clip extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("clip extraction failed: %w", err)
	}

	return nil
}
