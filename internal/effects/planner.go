// Package effects converts presence segments into a gapless timeline of
// visual-treatment instructions for the external renderer.
package effects

import (
	"fmt"
	"sort"

	"clipforge/internal/presence"
)

// Type identifies a visual treatment
type Type string

const (
	FullFrame   Type = "full_frame"
	ZoomIn      Type = "zoom_in"
	ZoomOut     Type = "zoom_out"
	SplitScreen Type = "split_screen"
	PanLeft     Type = "pan_left"
	PanRight    Type = "pan_right"
)

// Segment is one planned treatment over a time interval
type Segment struct {
	StartSec float64        `json:"start_sec"`
	EndSec   float64        `json:"end_sec"`
	Type     Type           `json:"effect_type"`
	Params   map[string]any `json:"params,omitempty"`
}

// Rule constants: multi-person or long single-person scenes get a two-act
// treatment, short scenes a single effect.
const (
	fillerGapSec      = 1.0
	multiSplitDurSec  = 8.0
	singleSplitDurSec = 5.0
)

// Plan converts presence segments into an ordered, contiguous effect timeline
// spanning exactly [0, totalDuration]. With no presence the whole clip is a
// single full-frame segment. Presence segments are processed in start order;
// ones outside [0, totalDuration] are clamped, fully-disjoint ones dropped.
func Plan(totalDuration float64, people []presence.Segment) ([]Segment, error) {
	if totalDuration < 0 {
		return nil, fmt.Errorf("total duration must be non-negative, got %g", totalDuration)
	}
	if totalDuration == 0 {
		return []Segment{}, nil
	}

	ordered := append([]presence.Segment(nil), people...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartSec < ordered[j].StartSec
	})

	var plan []Segment
	currentTime := 0.0

	for _, seg := range ordered {
		if seg.EndSec <= currentTime || seg.StartSec >= totalDuration {
			continue
		}

		start := seg.StartSec
		end := seg.EndSec
		if end > totalDuration {
			end = totalDuration
		}

		if start > currentTime+fillerGapSec {
			plan = append(plan, fullFrame(currentTime, start))
		} else if start != currentTime {
			// Sub-threshold gap (or overlap with the previous effect):
			// absorb into this effect so the timeline stays contiguous
			start = currentTime
		}

		plan = append(plan, classify(seg.PersonCount, start, end)...)
		currentTime = end
	}

	if currentTime < totalDuration {
		plan = append(plan, fullFrame(currentTime, totalDuration))
	}

	return plan, nil
}

// classify applies the person-count/duration rule table to one presence run
func classify(personCount int, start, end float64) []Segment {
	duration := end - start
	mid := start + duration/2

	switch {
	case personCount >= 2 && duration > multiSplitDurSec:
		// Long multi-person scene: zoom on one speaker, then split screen
		return []Segment{
			{StartSec: start, EndSec: mid, Type: ZoomIn, Params: map[string]any{"focus": "left", "scale": 1.5}},
			{StartSec: mid, EndSec: end, Type: SplitScreen, Params: map[string]any{"orientation": "horizontal"}},
		}

	case personCount >= 2:
		return []Segment{
			{StartSec: start, EndSec: end, Type: ZoomIn, Params: map[string]any{"focus": "center", "scale": 1.3}},
		}

	case personCount == 1 && duration > singleSplitDurSec:
		// Long single-person scene: zoom then pan
		return []Segment{
			{StartSec: start, EndSec: mid, Type: ZoomIn, Params: map[string]any{"focus": "center", "scale": 1.4}},
			{StartSec: mid, EndSec: end, Type: PanLeft, Params: map[string]any{"zoom": 1.2}},
		}

	default:
		return []Segment{
			{StartSec: start, EndSec: end, Type: ZoomIn, Params: map[string]any{"focus": "center", "scale": 1.2}},
		}
	}
}

func fullFrame(start, end float64) Segment {
	return Segment{
		StartSec: start,
		EndSec:   end,
		Type:     FullFrame,
		Params:   map[string]any{"transition": "fade"},
	}
}
