package skills

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/evaluators"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
)

const (
	flashlightSkillMultiplier float64 = 0.05512
	flashlightStrainDecayBase float64 = 0.15
)

// Flashlight rates the memory/visibility pressure of playing with a reduced
// view area. It contributes to the rating only when the modifier is active.
type Flashlight struct {
	*Skill
	CurrentStrain float64
}

func NewFlashlightSkill(d *difficulty.Difficulty) *Flashlight {
	skill := &Flashlight{Skill: NewSkill(d, false)}

	skill.StrainValueOf = skill.flashlightStrainValue
	skill.CalculateInitialStrain = skill.flashlightInitialStrain

	return skill
}

func (skill *Flashlight) strainDecay(ms float64) float64 {
	return math.Pow(flashlightStrainDecayBase, ms/1000)
}

func (skill *Flashlight) flashlightInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Flashlight) flashlightStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateFlashlight(current) * flashlightSkillMultiplier

	return skill.CurrentStrain
}

// DifficultyValue for flashlight is a plain sum of the section peaks: view
// pressure doesn't spike the way mechanical strain does, so no section damping.
func (skill *Flashlight) DifficultyValue() float64 {
	sum := 0.0
	for _, peak := range skill.GetCurrentStrainPeaks() {
		sum += peak
	}

	skill.rawDifficulty = sum

	return sum
}

func FlashlightDifficultyToPerformance(difficulty float64) float64 {
	return 25 * math.Pow(difficulty, 2)
}
