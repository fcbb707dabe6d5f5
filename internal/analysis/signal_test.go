package analysis

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnergySeriesWindowCount(t *testing.T) {
	// 10s of audio at 100Hz, 2s windows, 1s stride: windows at 0..8 = 9
	src := &Source{Samples: make([]float64, 1000), SampleRate: 100}
	ts, err := EnergySeries(src, 2.0, 1.0)
	if err != nil {
		t.Fatalf("EnergySeries failed: %v", err)
	}
	if len(ts.Values) != 9 {
		t.Errorf("got %d windows, want 9", len(ts.Values))
	}
}

func TestEnergySeriesSkipsShortTail(t *testing.T) {
	// 2.5s of audio, 2s windows, 2s stride: only the window at 0 fits
	src := &Source{Samples: make([]float64, 250), SampleRate: 100}
	ts, err := EnergySeries(src, 2.0, 2.0)
	if err != nil {
		t.Fatalf("EnergySeries failed: %v", err)
	}
	if len(ts.Values) != 1 {
		t.Errorf("got %d windows, want 1 (tail skipped, not padded)", len(ts.Values))
	}
}

func TestEnergySeriesDegeneratesToSingleZero(t *testing.T) {
	src := &Source{Samples: make([]float64, 10), SampleRate: 100}
	ts, err := EnergySeries(src, 2.0, 1.0)
	if err != nil {
		t.Fatalf("EnergySeries failed: %v", err)
	}
	if len(ts.Values) != 1 || ts.Values[0] != 0 {
		t.Errorf("expected single-zero series, got %v", ts.Values)
	}
}

func TestEnergySeriesComputesRMS(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = 0.5
	}
	src := &Source{Samples: samples, SampleRate: 100}
	ts, err := EnergySeries(src, 1.0, 1.0)
	if err != nil {
		t.Fatalf("EnergySeries failed: %v", err)
	}
	if !almostEqual(ts.Values[0], 0.5) {
		t.Errorf("rms of constant 0.5 = %g, want 0.5", ts.Values[0])
	}
}

func TestEnergySeriesRejectsInvalidParams(t *testing.T) {
	src := &Source{Samples: make([]float64, 100), SampleRate: 100}
	if _, err := EnergySeries(src, 0, 1.0); err == nil {
		t.Error("expected error for zero window")
	}
	if _, err := EnergySeries(src, 2.0, -1); err == nil {
		t.Error("expected error for negative stride")
	}
}

func TestMotionSeriesRebinsByIndex(t *testing.T) {
	// 6 diffs into 3 bins: [0,1], [2,3], [4,5]
	src := &Source{FrameDiffs: []float64{1, 3, 5, 7, 9, 11}}
	ts := MotionSeries(src, 3, 2.0, 1.0)
	want := []float64{2, 6, 10}
	for i, w := range want {
		if !almostEqual(ts.Values[i], w) {
			t.Errorf("bin %d = %g, want %g", i, ts.Values[i], w)
		}
	}
}

func TestMotionSeriesUnevenPartition(t *testing.T) {
	// 5 diffs into 3 bins: boundaries at floor(i*5/3) = 0,1,3,5
	src := &Source{FrameDiffs: []float64{1, 2, 3, 4, 5}}
	ts := MotionSeries(src, 3, 2.0, 1.0)
	want := []float64{1, 2.5, 4.5}
	for i, w := range want {
		if !almostEqual(ts.Values[i], w) {
			t.Errorf("bin %d = %g, want %g", i, ts.Values[i], w)
		}
	}
}

func TestMotionSeriesEmptyDiffsAllZero(t *testing.T) {
	src := &Source{}
	ts := MotionSeries(src, 4, 2.0, 1.0)
	if len(ts.Values) != 4 {
		t.Fatalf("got %d bins, want 4", len(ts.Values))
	}
	for i, v := range ts.Values {
		if v != 0 {
			t.Errorf("bin %d = %g, want 0", i, v)
		}
	}
}

func TestMotionSeriesSingleBin(t *testing.T) {
	src := &Source{FrameDiffs: []float64{2, 4, 6}}
	ts := MotionSeries(src, 1, 2.0, 1.0)
	if len(ts.Values) != 1 || !almostEqual(ts.Values[0], 4) {
		t.Errorf("single bin = %v, want [4]", ts.Values)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	a := []byte{10, 20, 30, 40}
	b := []byte{12, 18, 30, 50}
	if got := meanAbsDiff(a, b); !almostEqual(got, 3.5) {
		t.Errorf("meanAbsDiff = %g, want 3.5", got)
	}
	if got := meanAbsDiff(nil, nil); got != 0 {
		t.Errorf("meanAbsDiff of empty = %g, want 0", got)
	}
}
