package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// FrameStreamOptions configures grayscale frame streaming
type FrameStreamOptions struct {
	// Width/Height of the decoded frames. Analysis does not need full
	// resolution, so callers typically downscale.
	Width  int
	Height int
	// SampleFPS > 0 decodes only that many frames per second instead of
	// every frame.
	SampleFPS float64
}

// ErrStopStreaming can be returned from a frame callback to end streaming
// early without surfacing an error.
var ErrStopStreaming = errors.New("stop streaming")

// StreamGrayFrames decodes input as 8-bit grayscale raw video and invokes fn
// for each frame in decode order. The pixel slice is reused between calls;
// callers that retain a frame must copy it.
func (e *Executor) StreamGrayFrames(ctx context.Context, input string, opts FrameStreamOptions, fn func(index int, pixels []byte) error) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}

	filters := []string{}
	if opts.SampleFPS > 0 {
		filters = append(filters, fmt.Sprintf("fps=%g", opts.SampleFPS))
	}
	filters = append(filters,
		fmt.Sprintf("scale=%d:%d", opts.Width, opts.Height),
		"format=gray",
	)

	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", input,
		"-vf", strings.Join(filters, ","),
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"-",
	}

	e.logger.Debug().
		Str("input", input).
		Int("width", opts.Width).
		Int("height", opts.Height).
		Float64("sample_fps", opts.SampleFPS).
		Msg("streaming grayscale frames")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	frameSize := opts.Width * opts.Height
	reader := bufio.NewReaderSize(stdout, frameSize)
	frame := make([]byte, frameSize)

	var stopped bool
	index := 0
	for {
		_, err := io.ReadFull(reader, frame)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			// Trailing partial frame, drop it
			break
		}
		if err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return fmt.Errorf("frame read failed: %w", err)
		}

		if err := fn(index, frame); err != nil {
			stopped = true
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			if errors.Is(err, ErrStopStreaming) {
				return nil
			}
			return err
		}
		index++
	}

	if err := cmd.Wait(); err != nil && !stopped {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("frame decoding failed: %w", err)
	}

	e.logger.Debug().Int("frames", index).Msg("frame streaming complete")
	return nil
}
