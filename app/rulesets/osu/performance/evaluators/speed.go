package evaluators

import (
	"math"

	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
	"github.com/mekyu/rate-go/framework/math/mutils"
)

const (
	singleSpacingThreshold float64 = 125
	speedMinSpeedBonus     float64 = 75 // ~200 bpm
	speedBalancingFactor   float64 = 40
)

// EvaluateSpeed rates the tapping pressure of the current object from its
// strain time, with a bonus for high spacing so spaced streams count for both
// skills.
func EvaluateSpeed(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	osuCurrObj := current
	osuPrevObj := current.Previous(0)
	osuNextObj := current.Next(0)

	strainTime := osuCurrObj.StrainTime
	doubletapness := 1.0 - osuCurrObj.GetDoubletapness(osuNextObj)

	// Cap deltatime to the OD 300 hitwindow.
	// 0.93 is derived from making sure 260bpm OD8 streams aren't nerfed harshly, whilst 0.92 limits the effect of the cap.
	strainTime /= mutils.Clamp(strainTime/osuCurrObj.GreatWindow/0.93, 0.92, 1)

	// speedBonus will be 1.0 for BPM < 200
	speedBonus := 1.0

	// Add additional scaling bonus for streams/bursts higher than 200bpm
	if strainTime < speedMinSpeedBonus {
		speedBonus = 1 + 0.75*math.Pow((speedMinSpeedBonus-strainTime)/speedBalancingFactor, 2)
	}

	travelDistance := 0.0
	if osuPrevObj != nil {
		travelDistance = osuPrevObj.TravelDistance
	}

	distance := min(singleSpacingThreshold, travelDistance+osuCurrObj.MinimumJumpDistance)

	return (speedBonus + speedBonus*math.Pow(distance/singleSpacingThreshold, 3.5)) * doubletapness / strainTime
}
