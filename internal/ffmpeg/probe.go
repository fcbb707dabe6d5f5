package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"clipforge/pkg/util"
)

// VideoInfo contains metadata about a media file
type VideoInfo struct {
	FilePath    string
	DurationSec float64
	Width       int
	Height      int
	FPS         float64
	TotalFrames int
	VideoCodec  string
	HasVideo    bool
	HasAudio    bool
	AudioCodec  string
	SampleRate  int
}

// Probe extracts metadata from a media file
func (e *Executor) Probe(ctx context.Context, filePath string) (*VideoInfo, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is required")
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	}

	cmd := exec.CommandContext(ctx, e.ffprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", filePath, err)
	}

	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	return probe.toInfo(filePath), nil
}

// probeResult matches ffprobe JSON output structure
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
		NbFrames   string `json:"nb_frames"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

func (p probeResult) toInfo(filePath string) *VideoInfo {
	info := &VideoInfo{FilePath: filePath}

	if dur, err := strconv.ParseFloat(p.Format.Duration, 64); err == nil {
		info.DurationSec = dur
	}

	for _, stream := range p.Streams {
		switch stream.CodecType {
		case "video":
			info.HasVideo = true
			info.Width = stream.Width
			info.Height = stream.Height
			info.VideoCodec = stream.CodecName
			if stream.RFrameRate != "" {
				info.FPS = util.ParseFrameRate(stream.RFrameRate)
			}
			if n, err := strconv.Atoi(stream.NbFrames); err == nil {
				info.TotalFrames = n
			}
		case "audio":
			info.HasAudio = true
			info.AudioCodec = stream.CodecName
			if sr, err := strconv.Atoi(stream.SampleRate); err == nil {
				info.SampleRate = sr
			}
		}
	}

	// Some containers omit nb_frames; estimate from duration
	if info.TotalFrames == 0 && info.FPS > 0 {
		info.TotalFrames = int(info.DurationSec * info.FPS)
	}

	return info
}
