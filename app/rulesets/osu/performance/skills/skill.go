package skills

import (
	"math"
	"slices"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
	"github.com/mekyu/rate-go/framework/math/mutils"
)

const (
	// SectionLength is the strain peak section length in ms on the played timeline.
	SectionLength float64 = 400

	defaultDecayWeight           = 0.9
	defaultReducedSectionCount   = 10
	defaultReducedStrainBaseline = 0.75
	defaultDifficultyMultiplier  = 1.06
)

// Skill is the shared strain bookkeeping: a decaying running value sampled
// into fixed-length sections, where each section keeps its maximum. Concrete
// skills plug in their strain formula through the two function fields.
type Skill struct {
	DecayWeight           float64
	ReducedSectionCount   int
	ReducedStrainBaseline float64
	DifficultyMultiplier  float64

	diff *difficulty.Difficulty

	// retainStrains keeps the per-object strain list behind the difficult
	// strain count and the relevant note count. Peak-only passes turn it off
	// to keep memory at O(sections).
	retainStrains bool

	objectStrains []float64
	strainPeaks   []float64

	currentSectionPeak float64
	currentSectionEnd  float64

	rawDifficulty float64

	// StrainValueOf updates and returns the skill's running strain for an object.
	StrainValueOf func(obj *preprocessing.DifficultyObject) float64

	// CalculateInitialStrain seeds a new section with the decayed strain level
	// at the section border.
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64
}

func NewSkill(d *difficulty.Difficulty, retainStrains bool) *Skill {
	return &Skill{
		DecayWeight:           defaultDecayWeight,
		ReducedSectionCount:   defaultReducedSectionCount,
		ReducedStrainBaseline: defaultReducedStrainBaseline,
		DifficultyMultiplier:  defaultDifficultyMultiplier,
		diff:                  d,
		retainStrains:         retainStrains,
	}
}

func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	// The first object doesn't generate a strain, so we begin with an incremented section end
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/SectionLength) * SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)

		// The maximum strain of the new section is not zero by default: capture
		// the decayed strain level at the section border as the initial peak.
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

// DifficultyValue reduces the strain peaks to one scalar: the highest sections
// are damped first to soften isolated spikes, then everything is summed with a
// geometrically decaying weight so sustained difficulty dominates.
func (skill *Skill) DifficultyValue() float64 {
	difficulty := 0.0
	weight := 1.0

	// Sections with 0 strain are excluded to avoid worst-case time complexity of the sort.
	peaks := skill.GetCurrentStrainPeaks()
	peaks = slices.DeleteFunc(peaks, func(peak float64) bool { return peak <= 0 })

	slices.SortFunc(peaks, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	for i := 0; i < min(len(peaks), skill.ReducedSectionCount); i++ {
		scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
		peaks[i] *= mutils.Lerp(skill.ReducedStrainBaseline, 1.0, scale)
	}

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
		weight *= skill.DecayWeight
	}

	skill.rawDifficulty = difficulty

	return difficulty * skill.DifficultyMultiplier
}

// CountDifficultStrains estimates how many strains are comparable to the top
// ones; the miss penalty curve scales with it. Valid after DifficultyValue,
// and only when per-object strains were retained.
func (skill *Skill) CountDifficultStrains() float64 {
	if skill.rawDifficulty == 0 {
		return 0
	}

	// What would the top strain be if all strain values were identical
	consistentTopStrain := skill.rawDifficulty / 10

	sum := 0.0
	for _, s := range skill.objectStrains {
		sum += 1.1 / (1 + math.Exp(-10*(s/consistentTopStrain-0.88)))
	}

	return sum
}

// DefaultDifficultyToPerformance is the base difficulty-to-performance curve
// shared by aim and speed.
func DefaultDifficultyToPerformance(difficulty float64) float64 {
	return math.Pow(5*math.Max(1, difficulty/0.0675)-4, 3) / 100000
}
