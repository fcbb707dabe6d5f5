package semantic

import (
	"fmt"
	"strings"
)

func endsSentence(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasSuffix(trimmed, ".") ||
		strings.HasSuffix(trimmed, "!") ||
		strings.HasSuffix(trimmed, "?")
}

// PickIdeaEndpoint chooses a clip end time inside
// [startHint+minDur, startHint+maxDur].
//
// The transcript candidate is the first segment (in given order) ending
// inside the window whose text ends in sentence punctuation, falling back to
// the first segment ending inside the window at all. The silence candidate is
// the first interval (in given order) starting inside the window. When both
// exist the earlier wins; when neither exists the hard fallback is
// startHint+maxDur, so the result is always inside the window.
func PickIdeaEndpoint(transcript *Transcript, silences []SilenceInterval, startHint, minDur, maxDur float64) (float64, error) {
	if minDur < 0 {
		return 0, fmt.Errorf("min duration must be non-negative, got %g", minDur)
	}
	if minDur > maxDur {
		return 0, fmt.Errorf("min duration %g exceeds max duration %g", minDur, maxDur)
	}

	minEnd := startHint + minDur
	maxEnd := startHint + maxDur

	transcriptCand, haveTranscript := transcriptCandidate(transcript, minEnd, maxEnd)
	silenceCand, haveSilence := silenceCandidate(silences, minEnd, maxEnd)

	switch {
	case haveTranscript && haveSilence:
		if transcriptCand < silenceCand {
			return transcriptCand, nil
		}
		return silenceCand, nil
	case haveTranscript:
		return transcriptCand, nil
	case haveSilence:
		return silenceCand, nil
	default:
		return maxEnd, nil
	}
}

func transcriptCandidate(transcript *Transcript, minEnd, maxEnd float64) (float64, bool) {
	if transcript == nil {
		return 0, false
	}

	for _, seg := range transcript.Segments {
		if seg.EndSec < minEnd || seg.EndSec > maxEnd {
			continue
		}
		if endsSentence(seg.Text) {
			return seg.EndSec, true
		}
	}

	// No sentence boundary in range; settle for any segment end
	for _, seg := range transcript.Segments {
		if seg.EndSec >= minEnd && seg.EndSec <= maxEnd {
			return seg.EndSec, true
		}
	}

	return 0, false
}

func silenceCandidate(silences []SilenceInterval, minEnd, maxEnd float64) (float64, bool) {
	for _, s := range silences {
		if s.StartSec >= minEnd && s.StartSec <= maxEnd {
			return s.StartSec, true
		}
	}
	return 0, false
}
