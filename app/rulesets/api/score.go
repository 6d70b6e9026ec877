package api

import (
	"errors"
	"fmt"
)

// ErrMismatchedModifiers is returned when a performance calculation receives
// difficulty attributes produced under a different modifier set. The mismatch
// is a caller error and is never silently coerced.
var ErrMismatchedModifiers = errors.New("difficulty attributes were calculated with a different modifier set")

// ScoreState is the caller-owned running state of one play. The caller mutates
// it between gradual performance steps, one judgement at a time. Individual
// out-of-range fields are clamped by the calculators because score inputs
// routinely come from untrusted sources.
type ScoreState struct {
	// MaxCombo is the highest combo reached so far, not the current combo.
	MaxCombo int

	CountGreat int
	CountOk    int
	CountMeh   int
	CountMiss  int
}

func (s ScoreState) TotalHits() int {
	return s.CountGreat + s.CountOk + s.CountMeh + s.CountMiss
}

// Accuracy is the weighted hit ratio in [0,1].
func (s ScoreState) Accuracy() float64 {
	total := s.TotalHits()
	if total == 0 {
		return 1
	}

	return float64(s.CountGreat*300+s.CountOk*100+s.CountMeh*50) / float64(total*300)
}

// TaikoAccuracy is the taiko flavour: no meh judgement, ok counts half.
func (s ScoreState) TaikoAccuracy() float64 {
	total := s.CountGreat + s.CountOk + s.CountMiss
	if total == 0 {
		return 1
	}

	return float64(s.CountGreat*300+s.CountOk*150) / float64(total*300)
}

// Clamp bounds every count to [0, objectCount] and their sum to objectCount,
// dropping overflow from mehs first, then oks, then misses, then greats.
func (s ScoreState) Clamp(objectCount int) ScoreState {
	clampInt := func(v int) int {
		if v < 0 {
			return 0
		}

		if v > objectCount {
			return objectCount
		}

		return v
	}

	s.MaxCombo = clampInt(s.MaxCombo)
	s.CountGreat = clampInt(s.CountGreat)
	s.CountOk = clampInt(s.CountOk)
	s.CountMeh = clampInt(s.CountMeh)
	s.CountMiss = clampInt(s.CountMiss)

	for s.TotalHits() > objectCount {
		overflow := s.TotalHits() - objectCount

		switch {
		case s.CountMeh > 0:
			s.CountMeh -= min(overflow, s.CountMeh)
		case s.CountOk > 0:
			s.CountOk -= min(overflow, s.CountOk)
		case s.CountMiss > 0:
			s.CountMiss -= min(overflow, s.CountMiss)
		default:
			s.CountGreat -= min(overflow, s.CountGreat)
		}
	}

	return s
}

// HitResultPriority decides which judgement soaks up the hits left over when a
// score state is generated from partial information.
type HitResultPriority int

const (
	// BestCase assigns leftover hits to the most valuable judgement.
	BestCase HitResultPriority = iota
	// WorstCase assigns leftover hits to the least valuable judgement.
	WorstCase
)

// PerfectState is the score state of a flawless play against the attributes.
func PerfectState(objectCount, maxCombo int) ScoreState {
	return ScoreState{
		MaxCombo:   maxCombo,
		CountGreat: objectCount,
	}
}

func (s ScoreState) String() string {
	return fmt.Sprintf("%dx [%d/%d/%d/%d]", s.MaxCombo, s.CountGreat, s.CountOk, s.CountMeh, s.CountMiss)
}
