package analysis

import (
	"math"
	"testing"
)

func TestArgmaxUniqueMaximum(t *testing.T) {
	if got := argmax([]float64{0.1, 0.9, 0.3}); got != 1 {
		t.Errorf("argmax = %d, want 1", got)
	}
}

func TestArgmaxTieResolvesToLowestIndex(t *testing.T) {
	if got := argmax([]float64{0.2, 0.7, 0.7, 0.5}); got != 1 {
		t.Errorf("argmax = %d, want first of the tied maxima (1)", got)
	}
}

func TestArgmaxSingleElement(t *testing.T) {
	if got := argmax([]float64{0}); got != 0 {
		t.Errorf("argmax = %d, want 0", got)
	}
}

func TestStandardizeZeroMeanUnitSpread(t *testing.T) {
	out := standardize([]float64{1, 2, 3, 4})
	var sum float64
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("standardized mean = %g, want ~0", sum/4)
	}
	if out[0] >= out[3] {
		t.Error("standardization must preserve ordering")
	}
}

func TestStandardizeConstantSeriesStaysFinite(t *testing.T) {
	out := standardize([]float64{5, 5, 5})
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("value %d = %g, want finite", i, v)
		}
		if v != 0 {
			t.Errorf("value %d = %g, want 0 for constant input", i, v)
		}
	}
}

func TestFusedScoresWeighting(t *testing.T) {
	// One loud window among silence; motion constant so audio dominates
	samples := make([]float64, 400)
	for i := 100; i < 200; i++ {
		samples[i] = 0.9
	}
	src := &Source{
		Samples:    samples,
		SampleRate: 100,
		FrameDiffs: []float64{1, 1, 1, 1, 1, 1},
	}

	scores, err := fusedScores(src, 1.0, 1.0)
	if err != nil {
		t.Fatalf("fusedScores failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("got %d scores, want 4", len(scores))
	}
	if argmax(scores) != 1 {
		t.Errorf("loudest window should win, argmax = %d", argmax(scores))
	}
}

func TestFusedScoresDegenerateSingleWindow(t *testing.T) {
	src := &Source{Samples: make([]float64, 10), SampleRate: 100}
	scores, err := fusedScores(src, 2.0, 1.0)
	if err != nil {
		t.Fatalf("fusedScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("got %d scores, want 1", len(scores))
	}
}

func windowsOverlap(a, b ScoredWindow, gap float64) bool {
	return !(a.End()+gap <= b.StartSec || b.End()+gap <= a.StartSec)
}

func TestSelectNonOverlappingGuarantee(t *testing.T) {
	candidates := []ScoredWindow{
		{StartSec: 0, DurationSec: 20, Score: 0.9},
		{StartSec: 5, DurationSec: 20, Score: 0.8},
		{StartSec: 30, DurationSec: 20, Score: 0.7},
		{StartSec: 52, DurationSec: 20, Score: 0.95},
		{StartSec: 100, DurationSec: 30, Score: 0.5},
	}

	accepted := selectNonOverlapping(candidates, 10, 5.0)
	for i := 0; i < len(accepted); i++ {
		for j := i + 1; j < len(accepted); j++ {
			if windowsOverlap(accepted[i], accepted[j], 5.0) {
				t.Errorf("accepted windows %d and %d overlap within the gap: %+v %+v",
					i, j, accepted[i], accepted[j])
			}
		}
	}
}

func TestSelectNonOverlappingPrefersHigherScore(t *testing.T) {
	candidates := []ScoredWindow{
		{StartSec: 0, DurationSec: 20, Score: 0.5},
		{StartSec: 10, DurationSec: 20, Score: 0.9},
	}
	accepted := selectNonOverlapping(candidates, 2, 0)
	if len(accepted) != 1 {
		t.Fatalf("got %d accepted, want 1", len(accepted))
	}
	if accepted[0].Score != 0.9 {
		t.Errorf("kept score %g, want the higher 0.9", accepted[0].Score)
	}
}

func TestSelectNonOverlappingTieKeepsFirstEncountered(t *testing.T) {
	candidates := []ScoredWindow{
		{StartSec: 0, DurationSec: 20, Score: 0.7},
		{StartSec: 10, DurationSec: 30, Score: 0.7},
	}
	accepted := selectNonOverlapping(candidates, 2, 0)
	if len(accepted) != 1 {
		t.Fatalf("got %d accepted, want exactly 1 of the overlapping pair", len(accepted))
	}
	if accepted[0].StartSec != 0 || accepted[0].DurationSec != 20 {
		t.Errorf("kept %+v, want the first-encountered candidate", accepted[0])
	}
}

func TestSelectNonOverlappingGreedyNotOptimal(t *testing.T) {
	// The single 0.9 window blocks two 0.8 windows whose combined score is
	// higher; greedy selection keeps the 0.9 anyway.
	candidates := []ScoredWindow{
		{StartSec: 10, DurationSec: 30, Score: 0.9},
		{StartSec: 0, DurationSec: 15, Score: 0.8},
		{StartSec: 28, DurationSec: 15, Score: 0.8},
	}
	accepted := selectNonOverlapping(candidates, 3, 0)
	if len(accepted) != 1 || accepted[0].Score != 0.9 {
		t.Errorf("greedy selection should keep only the 0.9 window, got %+v", accepted)
	}
}

func TestSelectNonOverlappingRespectsMaxClips(t *testing.T) {
	candidates := []ScoredWindow{
		{StartSec: 0, DurationSec: 10, Score: 0.9},
		{StartSec: 20, DurationSec: 10, Score: 0.8},
		{StartSec: 40, DurationSec: 10, Score: 0.7},
	}
	accepted := selectNonOverlapping(candidates, 2, 0)
	if len(accepted) != 2 {
		t.Errorf("got %d accepted, want maxClips=2", len(accepted))
	}
}
