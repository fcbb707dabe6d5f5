package semantic

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Transcriber produces the optional transcript. Unavailability degrades to a
// nil transcript, never an error into the engine.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) *Transcript
}

// WhisperTranscriber shells out to the whisper CLI when installed. A missing
// binary or a failed run yields a nil transcript.
type WhisperTranscriber struct {
	logger  zerolog.Logger
	model   string
	binary  string
	tempDir string
}

// NewWhisperTranscriber creates a transcriber using the given whisper model
// size hint (tiny, base, small, ...).
func NewWhisperTranscriber(logger zerolog.Logger, model, tempDir string) *WhisperTranscriber {
	binary, err := exec.LookPath("whisper")
	if err != nil {
		binary = ""
	}
	return &WhisperTranscriber{
		logger:  logger.With().Str("component", "transcriber").Logger(),
		model:   model,
		binary:  binary,
		tempDir: tempDir,
	}
}

// Available reports whether a whisper binary was found
func (t *WhisperTranscriber) Available() bool {
	return t.binary != ""
}

// Transcribe runs whisper with word timestamps and parses its JSON output
func (t *WhisperTranscriber) Transcribe(ctx context.Context, path string) *Transcript {
	if t.binary == "" {
		t.logger.Debug().Msg("whisper not installed, skipping transcription")
		return nil
	}

	outDir, err := os.MkdirTemp(t.tempDir, "clipforge-whisper")
	if err != nil {
		t.logger.Warn().Err(err).Msg("transcription temp dir failed")
		return nil
	}
	defer os.RemoveAll(outDir)

	args := []string{
		path,
		"--model", t.model,
		"--output_format", "json",
		"--output_dir", outDir,
		"--word_timestamps", "True",
	}

	cmd := exec.CommandContext(ctx, t.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.logger.Warn().Err(err).Str("output", tail(string(out))).
			Msg("transcription failed, proceeding without transcript")
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	jsonPath := filepath.Join(outDir, base+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.logger.Warn().Err(err).Msg("transcription output missing")
		return nil
	}

	transcript, err := parseWhisperJSON(data)
	if err != nil {
		t.logger.Warn().Err(err).Msg("transcription output unparseable")
		return nil
	}

	t.logger.Info().Int("segments", len(transcript.Segments)).Msg("transcription complete")
	return transcript
}

// whisperResult mirrors the whisper CLI JSON output
type whisperResult struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
		Words []struct {
			Start float64 `json:"start"`
			End   float64 `json:"end"`
			Word  string  `json:"word"`
		} `json:"words"`
	} `json:"segments"`
}

func parseWhisperJSON(data []byte) (*Transcript, error) {
	var result whisperResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	transcript := &Transcript{Language: result.Language}
	for _, seg := range result.Segments {
		out := TranscriptSegment{
			StartSec: seg.Start,
			EndSec:   seg.End,
			Text:     seg.Text,
		}
		for _, w := range seg.Words {
			out.Words = append(out.Words, Word{
				StartSec: w.Start,
				EndSec:   w.End,
				Token:    w.Word,
			})
		}
		transcript.Segments = append(transcript.Segments, out)
	}
	return transcript, nil
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 300 {
		return s[len(s)-300:]
	}
	return s
}
