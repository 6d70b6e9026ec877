package skills

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/evaluators"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
)

const (
	staminaSkillMultiplier float64 = 1.1
	staminaStrainDecayBase float64 = 0.4
)

// Stamina rates the sustained physical pressure of the note density.
type Stamina struct {
	*Skill
	CurrentStrain float64
}

func NewStaminaSkill(d *difficulty.Difficulty) *Stamina {
	skill := &Stamina{Skill: NewSkill(d)}

	skill.StrainValueOf = skill.staminaStrainValue
	skill.CalculateInitialStrain = skill.staminaInitialStrain

	return skill
}

func (skill *Stamina) strainDecay(ms float64) float64 {
	return math.Pow(staminaStrainDecayBase, ms/1000)
}

func (skill *Stamina) staminaInitialStrain(time float64, current *preprocessing.TaikoDifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Stamina) staminaStrainValue(current *preprocessing.TaikoDifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateStamina(current) * staminaSkillMultiplier

	return skill.CurrentStrain
}
