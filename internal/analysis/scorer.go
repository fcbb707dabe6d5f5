package analysis

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Audio energy is the primary engagement proxy; motion corroborates it.
const (
	audioWeight  = 0.6
	motionWeight = 0.4
	// Keeps standardization defined on constant series
	stdEpsilon = 1e-6
)

// ScoredWindow is a candidate clip interval with its fused engagement score
type ScoredWindow struct {
	StartSec    float64 `json:"start_sec"`
	DurationSec float64 `json:"duration_sec"`
	Score       float64 `json:"score"`
}

// End returns the exclusive end time of the window
func (w ScoredWindow) End() float64 {
	return w.StartSec + w.DurationSec
}

// Scorer answers engagement queries over a media file
type Scorer struct {
	logger    zerolog.Logger
	extractor *Extractor
}

// NewScorer creates a window scorer over the given extractor
func NewScorer(logger zerolog.Logger, extractor *Extractor) *Scorer {
	return &Scorer{
		logger:    logger.With().Str("component", "window-scorer").Logger(),
		extractor: extractor,
	}
}

// BestWindow returns the start time and fused score of the highest-scoring
// window of windowSec length, advanced by strideSec. Ties resolve to the
// earliest window.
func (s *Scorer) BestWindow(ctx context.Context, path string, windowSec, strideSec float64) (float64, float64, error) {
	src, err := s.extractor.Load(ctx, path)
	if err != nil {
		return 0, 0, err
	}

	scores, err := fusedScores(src, windowSec, strideSec)
	if err != nil {
		return 0, 0, err
	}

	idx := argmax(scores)
	startSec := float64(idx) * strideSec

	s.logger.Info().
		Float64("start_sec", startSec).
		Float64("score", scores[idx]).
		Int("windows", len(scores)).
		Msg("best window selected")

	return startSec, scores[idx], nil
}

// TopWindowsMulti scores every requested duration independently, pools all
// candidates, and greedily accepts them in score-descending order, rejecting
// any candidate that overlaps an accepted one within minGapSec. The selection
// is greedy, not globally optimal: a rejected candidate is never
// reconsidered. Results are re-sorted by start time.
func (s *Scorer) TopWindowsMulti(ctx context.Context, path string, durations []float64, strideSec float64, maxClips int, minGapSec float64) ([]ScoredWindow, error) {
	if len(durations) == 0 {
		return nil, fmt.Errorf("at least one duration is required")
	}
	if maxClips <= 0 {
		return nil, fmt.Errorf("max clips must be positive, got %d", maxClips)
	}
	if minGapSec < 0 {
		return nil, fmt.Errorf("min gap must be non-negative, got %g", minGapSec)
	}

	src, err := s.extractor.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	var candidates []ScoredWindow
	for _, dur := range durations {
		scores, err := fusedScores(src, dur, strideSec)
		if err != nil {
			return nil, err
		}
		for i, score := range scores {
			candidates = append(candidates, ScoredWindow{
				StartSec:    float64(i) * strideSec,
				DurationSec: dur,
				Score:       score,
			})
		}
	}

	accepted := selectNonOverlapping(candidates, maxClips, minGapSec)

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].StartSec < accepted[j].StartSec
	})

	s.logger.Info().
		Int("candidates", len(candidates)).
		Int("accepted", len(accepted)).
		Msg("multi-window selection complete")

	return accepted, nil
}

// fusedScores standardizes the energy and motion series independently and
// combines them elementwise.
func fusedScores(src *Source, windowSec, strideSec float64) ([]float64, error) {
	energy, err := EnergySeries(src, windowSec, strideSec)
	if err != nil {
		return nil, err
	}
	motion := MotionSeries(src, len(energy.Values), windowSec, strideSec)

	audioN := standardize(energy.Values)
	motionN := standardize(motion.Values)

	scores := make([]float64, len(audioN))
	for i := range scores {
		scores[i] = audioWeight*audioN[i] + motionWeight*motionN[i]
	}
	return scores, nil
}

// standardize subtracts the mean and divides by the (population) standard
// deviation plus a small epsilon.
func standardize(xs []float64) []float64 {
	m := mean(xs)
	var variance float64
	for _, x := range xs {
		d := x - m
		variance += d * d
	}
	if len(xs) > 0 {
		variance /= float64(len(xs))
	}
	std := math.Sqrt(variance) + stdEpsilon

	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (x - m) / std
	}
	return out
}

// argmax returns the index of the maximum value, lowest index on ties
func argmax(xs []float64) int {
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

// selectNonOverlapping implements greedy non-overlap selection: candidates are
// stably sorted by score descending (ties keep pool order) and accepted one
// by one unless they conflict with an already-accepted window.
func selectNonOverlapping(candidates []ScoredWindow, maxClips int, minGapSec float64) []ScoredWindow {
	pool := append([]ScoredWindow(nil), candidates...)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})

	var accepted []ScoredWindow
	for _, cand := range pool {
		if len(accepted) >= maxClips {
			break
		}
		if conflicts(cand, accepted, minGapSec) {
			continue
		}
		accepted = append(accepted, cand)
	}
	return accepted
}

func conflicts(cand ScoredWindow, accepted []ScoredWindow, minGapSec float64) bool {
	for _, a := range accepted {
		if cand.End()+minGapSec <= a.StartSec || a.End()+minGapSec <= cand.StartSec {
			continue
		}
		return true
	}
	return false
}
