package skills

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/evaluators"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
)

const (
	colourSkillMultiplier float64 = 0.12
	colourStrainDecayBase float64 = 0.8
)

// Colour rates how hard the note colour sequence is to read and execute.
type Colour struct {
	*Skill
	CurrentStrain float64
}

func NewColourSkill(d *difficulty.Difficulty) *Colour {
	skill := &Colour{Skill: NewSkill(d)}

	skill.StrainValueOf = skill.colourStrainValue
	skill.CalculateInitialStrain = skill.colourInitialStrain

	return skill
}

func (skill *Colour) strainDecay(ms float64) float64 {
	return math.Pow(colourStrainDecayBase, ms/1000)
}

func (skill *Colour) colourInitialStrain(time float64, current *preprocessing.TaikoDifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Colour) colourStrainValue(current *preprocessing.TaikoDifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateColour(current) * colourSkillMultiplier

	return skill.CurrentStrain
}
