package ffmpeg

import (
	"encoding/json"
	"testing"
)

func TestProbeResultToInfo(t *testing.T) {
	raw := `{
		"format": {"duration": "120.5"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920,
			 "height": 1080, "r_frame_rate": "30/1", "nb_frames": "3615"},
			{"codec_type": "audio", "codec_name": "aac", "sample_rate": "44100"}
		]
	}`

	var probe probeResult
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	info := probe.toInfo("test.mp4")
	if info.DurationSec != 120.5 {
		t.Errorf("duration = %g, want 120.5", info.DurationSec)
	}
	if !info.HasVideo || info.Width != 1920 || info.Height != 1080 {
		t.Errorf("video stream not parsed: %+v", info)
	}
	if info.FPS != 30 {
		t.Errorf("fps = %g, want 30", info.FPS)
	}
	if info.TotalFrames != 3615 {
		t.Errorf("total frames = %d, want 3615", info.TotalFrames)
	}
	if !info.HasAudio || info.SampleRate != 44100 {
		t.Errorf("audio stream not parsed: %+v", info)
	}
}

func TestProbeResultEstimatesFrameCount(t *testing.T) {
	raw := `{
		"format": {"duration": "10.0"},
		"streams": [
			{"codec_type": "video", "codec_name": "vp9", "width": 640,
			 "height": 360, "r_frame_rate": "25/1"}
		]
	}`

	var probe probeResult
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	info := probe.toInfo("test.webm")
	if info.TotalFrames != 250 {
		t.Errorf("estimated frames = %d, want 250", info.TotalFrames)
	}
}

func TestProbeResultAudioOnly(t *testing.T) {
	raw := `{
		"format": {"duration": "30.0"},
		"streams": [{"codec_type": "audio", "codec_name": "mp3", "sample_rate": "48000"}]
	}`

	var probe probeResult
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	info := probe.toInfo("test.mp3")
	if info.HasVideo {
		t.Error("audio-only file flagged as having video")
	}
	if info.TotalFrames != 0 {
		t.Errorf("total frames = %d, want 0", info.TotalFrames)
	}
}
