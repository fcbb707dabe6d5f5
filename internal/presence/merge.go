package presence

// The merge is an explicit two-state automaton over the sample sequence.
// There is deliberately no debounce: a single zero-count sample closes the
// open run, so a noisy detector fragments the timeline into short segments.
type mergeState int

const (
	stateIdle mergeState = iota
	stateOpen
)

// MergeSamples folds presence samples into maximal runs of consecutive
// samples whose PersonCount is positive. A run opens at the first positive
// sample, extends its end and running-max count/confidence on each further
// positive sample, and closes on a zero-count sample or end of input.
func MergeSamples(samples []Sample) []Segment {
	var segments []Segment
	var open Segment
	state := stateIdle

	for _, sample := range samples {
		switch state {
		case stateIdle:
			if sample.PersonCount > 0 {
				open = Segment{
					StartSec:    sample.TimeSec,
					EndSec:      sample.TimeSec,
					PersonCount: sample.PersonCount,
					Confidence:  sample.Confidence,
				}
				state = stateOpen
			}

		case stateOpen:
			if sample.PersonCount > 0 {
				open.EndSec = sample.TimeSec
				if sample.PersonCount > open.PersonCount {
					open.PersonCount = sample.PersonCount
				}
				if sample.Confidence > open.Confidence {
					open.Confidence = sample.Confidence
				}
			} else {
				segments = append(segments, open)
				state = stateIdle
			}
		}
	}

	if state == stateOpen {
		segments = append(segments, open)
	}

	return segments
}

// Window clips segments to the half-open interval [startSec, endSec) and
// shifts them to interval-relative time. Segments straddling an edge are
// trimmed; segments outside are dropped.
func Window(segments []Segment, startSec, endSec float64) []Segment {
	var out []Segment
	for _, seg := range segments {
		if seg.EndSec <= startSec || seg.StartSec >= endSec {
			continue
		}
		clipped := seg
		if clipped.StartSec < startSec {
			clipped.StartSec = startSec
		}
		if clipped.EndSec > endSec {
			clipped.EndSec = endSec
		}
		clipped.StartSec -= startSec
		clipped.EndSec -= startSec
		out = append(out, clipped)
	}
	return out
}
