package evaluators

import (
	"math"

	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
)

const (
	rhythmHistoryTimeMax float64 = 5000 // 5 seconds of calculateRhythmBonus max.
	rhythmMultiplier     float64 = 0.75
)

// EvaluateRhythm rates how awkward the recent rhythm is: changes of note
// spacing ("islands") are rewarded, repetition and slider-cushioned changes
// are not. The result is a multiplier applied on top of the speed strain.
func EvaluateRhythm(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	previousIslandSize := 0
	rhythmComplexitySum := 0.0
	islandSize := 1

	// Store the ratio of the current start of an island to buff for tighter rhythms.
	startRatio := 0.0

	firstDeltaSwitch := false

	historicalNoteCount := min(current.Index, 32)

	rhythmStart := 0

	for rhythmStart < historicalNoteCount-2 && current.StartTime-current.Previous(rhythmStart).StartTime < rhythmHistoryTimeMax {
		rhythmStart++
	}

	for i := rhythmStart; i > 0; i-- {
		currObj := current.Previous(i - 1)
		prevObj := current.Previous(i)
		lastObj := current.Previous(i + 1)

		// Scales note 0 to 1 from history to now.
		currHistoricalDecay := (rhythmHistoryTimeMax - (current.StartTime - currObj.StartTime)) / rhythmHistoryTimeMax

		// Either we're limited by time or limited by object count.
		currHistoricalDecay = min(float64(historicalNoteCount-i)/float64(historicalNoteCount), currHistoricalDecay)

		currDelta := currObj.StrainTime
		prevDelta := prevObj.StrainTime
		lastDelta := lastObj.StrainTime

		currRatio := 1.0 + 6.0*min(0.5, math.Pow(math.Sin(math.Pi/(min(prevDelta, currDelta)/max(prevDelta, currDelta))), 2))

		windowPenalty := min(1, max(0, math.Abs(prevDelta-currDelta)-currObj.GreatWindow*0.3)/(currObj.GreatWindow*0.3))

		effectiveRatio := windowPenalty * currRatio

		if firstDeltaSwitch {
			if prevDelta <= 1.25*currDelta && prevDelta*1.25 >= currDelta {
				// Island is still progressing, count size.
				if islandSize < 7 {
					islandSize++
				}
			} else {
				if currObj.IsSlider {
					// BPM change is into slider, this is easy acc window.
					effectiveRatio *= 0.125
				}

				if prevObj.IsSlider {
					// BPM change was from a slider, this is easier typically than circle -> circle.
					effectiveRatio *= 0.25
				}

				if previousIslandSize == islandSize {
					// Repeated island size (ex: triplet -> triplet).
					effectiveRatio *= 0.25
				}

				if previousIslandSize%2 == islandSize%2 {
					// Repeated island polarity (2 -> 4, 3 -> 5).
					effectiveRatio *= 0.5
				}

				if lastDelta > prevDelta+10 && prevDelta > currDelta+10 {
					// Previous increase happened a note ago, 1/1->1/2-1/4, don't want to buff this.
					effectiveRatio *= 0.125
				}

				rhythmComplexitySum += math.Sqrt(effectiveRatio*startRatio) * currHistoricalDecay *
					math.Sqrt(4+float64(islandSize)) / 2 * math.Sqrt(4+float64(previousIslandSize)) / 2

				startRatio = effectiveRatio
				previousIslandSize = islandSize

				if prevDelta*1.25 < currDelta {
					// We're slowing down, stop counting.
					firstDeltaSwitch = false
				}

				islandSize = 1
			}
		} else if prevDelta > 1.25*currDelta {
			// We want to be speeding up: begin counting island until we change speed again.
			firstDeltaSwitch = true
			startRatio = effectiveRatio
			islandSize = 1
		}
	}

	// Produces multiplier that can be applied to strain. range [1, infinity) (not really though)
	return math.Sqrt(4+rhythmComplexitySum*rhythmMultiplier) / 2
}
