// Package semantic picks clip endpoints that land on complete thoughts: a
// sentence boundary from the transcript, or a silence onset, whichever comes
// first inside the caller's duration bounds.
package semantic

// Word is a word-level timing inside a transcript segment
type Word struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Token    string  `json:"token"`
}

// TranscriptSegment is one transcribed phrase. Segments arrive ordered by
// non-decreasing start time and are treated as read-only values.
type TranscriptSegment struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
	Words    []Word  `json:"words,omitempty"`
}

// Transcript is the optional output of the transcriber collaborator
type Transcript struct {
	Language string              `json:"language,omitempty"`
	Segments []TranscriptSegment `json:"segments"`
}

// SilenceInterval is one detected silence. The detector does not guarantee
// ordering; consumers treat intervals as candidates in the order given.
type SilenceInterval struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}
