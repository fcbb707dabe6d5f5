package semantic

import (
	"testing"
)

func TestParseSilenceLines(t *testing.T) {
	lines := []string{
		"[silencedetect @ 0x55f] silence_start: 12.52",
		"[silencedetect @ 0x55f] silence_end: 13.9 | silence_duration: 1.38",
		"[silencedetect @ 0x55f] silence_start: 40.1",
		"[silencedetect @ 0x55f] silence_end: 41.05 | silence_duration: 0.95",
	}

	intervals := parseSilenceLines(lines)
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if intervals[0].StartSec != 12.52 || intervals[0].EndSec != 13.9 {
		t.Errorf("first interval = %+v, want (12.52, 13.9)", intervals[0])
	}
	if intervals[1].StartSec != 40.1 || intervals[1].EndSec != 41.05 {
		t.Errorf("second interval = %+v, want (40.1, 41.05)", intervals[1])
	}
}

func TestParseSilenceLinesIgnoresDanglingEnd(t *testing.T) {
	lines := []string{
		"[silencedetect @ 0x55f] silence_end: 13.9 | silence_duration: 1.38",
	}
	if got := parseSilenceLines(lines); len(got) != 0 {
		t.Errorf("dangling silence_end produced %d intervals, want 0", len(got))
	}
}

func TestParseSilenceLinesDropsInvertedInterval(t *testing.T) {
	lines := []string{
		"silence_start: 20.0",
		"silence_end: 19.0",
	}
	if got := parseSilenceLines(lines); len(got) != 0 {
		t.Errorf("inverted interval kept: %+v", got)
	}
}

func TestParseSilenceLinesEmptyInput(t *testing.T) {
	if got := parseSilenceLines(nil); len(got) != 0 {
		t.Errorf("got %d intervals from no lines", len(got))
	}
}

func TestParseWhisperJSON(t *testing.T) {
	data := []byte(`{
		"language": "en",
		"segments": [
			{"start": 0.0, "end": 4.2, "text": " Hello there.",
			 "words": [{"start": 0.0, "end": 0.8, "word": " Hello"},
			           {"start": 0.9, "end": 4.2, "word": " there."}]},
			{"start": 4.2, "end": 9.0, "text": " General Kenobi!"}
		]
	}`)

	transcript, err := parseWhisperJSON(data)
	if err != nil {
		t.Fatalf("parseWhisperJSON failed: %v", err)
	}
	if transcript.Language != "en" {
		t.Errorf("language = %q, want en", transcript.Language)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(transcript.Segments))
	}
	if transcript.Segments[0].EndSec != 4.2 {
		t.Errorf("segment end = %g, want 4.2", transcript.Segments[0].EndSec)
	}
	if len(transcript.Segments[0].Words) != 2 {
		t.Errorf("got %d words, want 2", len(transcript.Segments[0].Words))
	}
	if transcript.Segments[1].Words != nil {
		t.Error("segment without words should have nil Words")
	}
}

func TestParseWhisperJSONInvalid(t *testing.T) {
	if _, err := parseWhisperJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
