package skills

import (
	"math"
	"slices"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/evaluators"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
)

const (
	speedSkillMultiplier float64 = 1375
	speedStrainDecayBase float64 = 0.3
)

type SpeedSkill struct {
	*Skill

	CurrentStrain float64
	CurrentRhythm float64
}

func NewSpeedSkill(d *difficulty.Difficulty, retainStrains bool) *SpeedSkill {
	skill := &SpeedSkill{Skill: NewSkill(d, retainStrains)}

	skill.ReducedSectionCount = 5
	skill.DifficultyMultiplier = 1.04

	skill.StrainValueOf = skill.speedStrainValue
	skill.CalculateInitialStrain = skill.speedInitialStrain

	return skill
}

func (skill *SpeedSkill) strainDecay(ms float64) float64 {
	return math.Pow(speedStrainDecayBase, ms/1000)
}

func (skill *SpeedSkill) speedInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return (skill.CurrentStrain * skill.CurrentRhythm) * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *SpeedSkill) speedStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.StrainTime)
	skill.CurrentStrain += evaluators.EvaluateSpeed(current) * speedSkillMultiplier

	skill.CurrentRhythm = evaluators.EvaluateRhythm(current)

	totalStrain := skill.CurrentStrain * skill.CurrentRhythm

	if skill.retainStrains {
		skill.objectStrains = append(skill.objectStrains, totalStrain)
	}

	return totalStrain
}

// RelevantNoteCount estimates how many notes actually demand tapping speed,
// used to weigh accuracy on speed performance.
func (skill *SpeedSkill) RelevantNoteCount() float64 {
	if len(skill.objectStrains) == 0 {
		return 0
	}

	maxStrain := slices.Max(skill.objectStrains)

	if maxStrain == 0 {
		return 0
	}

	sum := 0.0
	for _, strain := range skill.objectStrains {
		sum += 1 / (1 + math.Exp(-(strain/maxStrain*12 - 6)))
	}

	return sum
}
