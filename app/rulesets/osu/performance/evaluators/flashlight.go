package evaluators

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
)

const (
	flMaxOpacityBonus    float64 = 0.4
	flHiddenBonus        float64 = 0.2
	flMinVelocity        float64 = 0.5
	flSliderMultiplier   float64 = 1.3
	flMinAngleMultiplier float64 = 0.2
)

// EvaluateFlashlight rates how hard an object is to find with a reduced view
// area, from the distances to the preceding objects weighted by how long ago
// and how visible they were.
func EvaluateFlashlight(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	osuCurrObj := current

	scalingFactor := 52.0 / osuCurrObj.Diff.CircleRadiusU
	smallDistNerf := 1.0
	cumulativeStrainTime := 0.0
	result := 0.0
	angleRepeatCount := 0.0

	lastObj := osuCurrObj

	hidden := osuCurrObj.Diff.CheckModActive(difficulty.Hidden)

	for i := 0; i < min(current.Index, 10); i++ {
		currentObj := current.Previous(i)

		if !currentObj.IsSpinner {
			jumpDistance := float64(osuCurrObj.BaseObject.GetStackedStartPositionMod(osuCurrObj.Diff.Mods).
				Dst(preprocessing.EndCursorPosition(currentObj.BaseObject, osuCurrObj.Diff)))

			cumulativeStrainTime += lastObj.StrainTime

			// We want to nerf objects that can be easily seen within the Flashlight circle radius.
			if i == 0 {
				smallDistNerf = min(1, jumpDistance/75)
			}

			// We also want to nerf stacks so that only the first object of the stack is accounted for.
			stackNerf := min(1, currentObj.LazyJumpDistance/scalingFactor/25)

			// Bonus based on how visible the object is.
			opacityBonus := 1 + flMaxOpacityBonus*(1-osuCurrObj.OpacityAt(currentObj.BaseObject.GetStartTime()))

			result += stackNerf * opacityBonus * scalingFactor * jumpDistance / cumulativeStrainTime

			if !math.IsNaN(currentObj.Angle) && !math.IsNaN(osuCurrObj.Angle) {
				// Objects further back in time should count less for the nerf.
				if math.Abs(currentObj.Angle-osuCurrObj.Angle) < 0.02 {
					angleRepeatCount += max(1-0.1*float64(i), 0)
				}
			}
		}

		lastObj = currentObj
	}

	result = math.Pow(smallDistNerf*result, 2)

	// Additional bonus for Hidden due to there being no approach circles.
	if hidden {
		result *= 1 + flHiddenBonus
	}

	// Nerf patterns with repeated angles.
	result *= flMinAngleMultiplier + (1-flMinAngleMultiplier)/(angleRepeatCount+1)

	sliderBonus := 0.0

	if osuCurrObj.IsSlider {
		if slider, ok := osuCurrObj.BaseObject.(*preprocessing.LazySlider); ok {
			// Invert the scaling factor to determine the true travel distance independent of circle size.
			pixelTravelDistance := float64(slider.LazyTravelDistance) / scalingFactor

			// Reward sliders based on velocity.
			sliderBonus = math.Pow(max(0, pixelTravelDistance/osuCurrObj.TravelTime-flMinVelocity), 0.5)

			// Longer sliders require more memorisation.
			sliderBonus *= pixelTravelDistance

			// Nerf sliders with repeats, as less memorisation is required.
			if slider.RepeatCount > 1 {
				sliderBonus /= float64(slider.RepeatCount)
			}
		}
	}

	result += sliderBonus * flSliderMultiplier

	return result
}
