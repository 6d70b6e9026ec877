package performance

import (
	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/skills"
)

type SkillsProcessor struct {
	Aim               *skills.AimSkill
	AimWithoutSliders *skills.AimSkill
	Speed             *skills.SpeedSkill
	Flashlight        *skills.Flashlight
}

// NewSkillsProcessor fans difficulty objects out to every skill. retainStrains
// keeps the per-object strain lists needed by the difficult strain counts and
// the relevant note count; peak-only passes turn it off.
func NewSkillsProcessor(d *difficulty.Difficulty, retainStrains bool) *SkillsProcessor {
	return &SkillsProcessor{
		Aim:               skills.NewAimSkill(d, true, retainStrains),
		AimWithoutSliders: skills.NewAimSkill(d, false, retainStrains),
		Speed:             skills.NewSpeedSkill(d, retainStrains),
		Flashlight:        skills.NewFlashlightSkill(d),
	}
}

func (proc *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	proc.Aim.Process(current)
	proc.AimWithoutSliders.Process(current)
	proc.Speed.Process(current)
	proc.Flashlight.Process(current)
}
