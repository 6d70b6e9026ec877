package skills

import (
	"math"
	"slices"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
)

const (
	// SectionLength is the strain peak section length in ms on the played timeline.
	SectionLength float64 = 400

	decayWeight = 0.9
)

// Skill is the shared strain bookkeeping for the drum skills: a decaying
// running value sampled into fixed-length sections, where each section keeps
// its maximum. Unlike the cursor skills there is no top-section damping; the
// skills are balanced against each other section by section instead.
type Skill struct {
	diff *difficulty.Difficulty

	strainPeaks []float64

	currentSectionPeak float64
	currentSectionEnd  float64

	// StrainValueOf updates and returns the skill's running strain for an object.
	StrainValueOf func(obj *preprocessing.TaikoDifficultyObject) float64

	// CalculateInitialStrain seeds a new section with the decayed strain level
	// at the section border.
	CalculateInitialStrain func(time float64, current *preprocessing.TaikoDifficultyObject) float64
}

func NewSkill(d *difficulty.Difficulty) *Skill {
	return &Skill{diff: d}
}

func (skill *Skill) Process(current *preprocessing.TaikoDifficultyObject) {
	// The first object doesn't generate a strain, so we begin with an incremented section end
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/SectionLength) * SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)

		skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += SectionLength
	}

	skill.currentSectionPeak = math.Max(skill.StrainValueOf(current), skill.currentSectionPeak)
}

// GetCurrentStrainPeaks returns every closed section peak plus the running one.
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, 0, len(skill.strainPeaks)+1)
	peaks = append(peaks, skill.strainPeaks...)
	peaks = append(peaks, skill.currentSectionPeak)

	return peaks
}

// DifficultyValue sums the sorted section peaks with a geometrically decaying
// weight.
func (skill *Skill) DifficultyValue() float64 {
	difficulty := 0.0
	weight := 1.0

	peaks := skill.GetCurrentStrainPeaks()

	slices.SortFunc(peaks, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	for _, strain := range peaks {
		difficulty += strain * weight
		weight *= decayWeight
	}

	return difficulty
}
