package beatmap

import (
	"fmt"
	"math"

	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/framework/math/math32"
)

// SuspicionReason enumerates why a chart was refused before calculation.
type SuspicionReason int

const (
	SuspicionObjectCount SuspicionReason = iota
	SuspicionLength
	SuspicionDensity
	SuspicionNonFiniteValue
	SuspicionSliderPositions
	SuspicionSliderRepeats
)

func (r SuspicionReason) String() string {
	switch r {
	case SuspicionObjectCount:
		return "excessive object count"
	case SuspicionLength:
		return "excessive length"
	case SuspicionDensity:
		return "excessive note density"
	case SuspicionNonFiniteValue:
		return "non-finite value"
	case SuspicionSliderPositions:
		return "too many sliders far off the playfield"
	case SuspicionSliderRepeats:
		return "too many sliders with extreme repeat counts"
	}

	return "unknown"
}

// SuspicionError is returned when a chart exceeds the safety thresholds.
// Calculation must be refused; running it anyway accepts unbounded resource use.
type SuspicionError struct {
	Reason SuspicionReason
}

func (e *SuspicionError) Error() string {
	return fmt.Sprintf("chart is too suspicious for calculation: %s", e.Reason)
}

const (
	maxObjectCount      = 500_000
	maxObjectCountTaiko = 20_000

	maxLength = 24 * 60 * 60 * 1000 // a day in ms

	// 200 notes per second is 12000 BPM of singletaps.
	densityPer1s  = 200
	densityPer10s = 500

	// The playfield is 512x384 and the format caps coordinates at 131072.
	sliderPosThreshold     = 10_000
	sliderRepeatThreshold  = 1000
	suspiciousSliderCutoff = 128
)

// CheckSuspicion is a cheap linear pre-pass rejecting charts whose object
// count, duration or values could make the strain pass pathologically
// expensive. It is a pure predicate: the chart is never modified.
func CheckSuspicion(b *Beatmap) error {
	objectLimit := maxObjectCount
	densityScale := 1

	if b.Mode == ModeTaiko {
		// Taiko calculation is especially expensive for high object counts.
		objectLimit = maxObjectCountTaiko
		densityScale = 2
	}

	if len(b.HitObjects) > objectLimit {
		return &SuspicionError{Reason: SuspicionObjectCount}
	}

	if b.Length() > maxLength {
		return &SuspicionError{Reason: SuspicionLength}
	}

	per1s := densityPer1s * densityScale
	per10s := densityPer10s * densityScale

	posBeyond := 0
	repeatsBeyond := 0

	for i, h := range b.HitObjects {
		if tooDense(b.HitObjects, i, per1s, per10s) {
			return &SuspicionError{Reason: SuspicionDensity}
		}

		pos := h.GetStartPosition()
		if math32.IsNaN(pos.X) || math32.IsNaN(pos.Y) || math.IsNaN(h.GetStartTime()) || math.IsInf(h.GetStartTime(), 0) {
			return &SuspicionError{Reason: SuspicionNonFiniteValue}
		}

		slider, ok := h.(*objects.Slider)
		if !ok || b.Mode == ModeTaiko {
			continue
		}

		posSuspicious := math32.Abs(pos.X) > sliderPosThreshold || math32.Abs(pos.Y) > sliderPosThreshold

		if slider.RepeatCount > sliderRepeatThreshold {
			if posSuspicious {
				// Both at once is a red flag on its own.
				return &SuspicionError{Reason: SuspicionSliderRepeats}
			}

			repeatsBeyond++
		} else if posSuspicious {
			posBeyond++
		}
	}

	if posBeyond > suspiciousSliderCutoff {
		return &SuspicionError{Reason: SuspicionSliderPositions}
	}

	if repeatsBeyond > suspiciousSliderCutoff {
		return &SuspicionError{Reason: SuspicionSliderRepeats}
	}

	return nil
}

func tooDense(hitObjects []objects.IHitObject, i, per1s, per10s int) bool {
	if len(hitObjects) > i+per1s &&
		hitObjects[i+per1s].GetStartTime()-hitObjects[i].GetStartTime() < 1000 {
		return true
	}

	return len(hitObjects) > i+per10s &&
		hitObjects[i+per10s].GetStartTime()-hitObjects[i].GetStartTime() < 10_000
}
