package performance

import (
	"math"
	"slices"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/skills"
)

const (
	peaksFinalMultiplier float64 = 0.0625

	rhythmSkillMultiplier  float64 = 0.2 * peaksFinalMultiplier
	colourSkillMultiplier  float64 = 0.375 * peaksFinalMultiplier
	staminaSkillMultiplier float64 = 0.375 * peaksFinalMultiplier
)

// Peaks drives the three drum skills together and combines their section
// peaks. The combination happens per section rather than per final value, so a
// section has to be hard in several skills at once to weigh fully.
type Peaks struct {
	Colour  *skills.Colour
	Rhythm  *skills.Rhythm
	Stamina *skills.Stamina
}

func NewPeaks(d *difficulty.Difficulty) *Peaks {
	return &Peaks{
		Colour:  skills.NewColourSkill(d),
		Rhythm:  skills.NewRhythmSkill(d),
		Stamina: skills.NewStaminaSkill(d),
	}
}

func (peaks *Peaks) Process(current *preprocessing.TaikoDifficultyObject) {
	peaks.Colour.Process(current)
	peaks.Rhythm.Process(current)
	peaks.Stamina.Process(current)
}

func (peaks *Peaks) ColourDifficultyValue() float64 {
	return peaks.Colour.DifficultyValue() * colourSkillMultiplier
}

func (peaks *Peaks) RhythmDifficultyValue() float64 {
	return peaks.Rhythm.DifficultyValue() * rhythmSkillMultiplier
}

func (peaks *Peaks) StaminaDifficultyValue() float64 {
	return peaks.Stamina.DifficultyValue() * staminaSkillMultiplier
}

// SectionPeaks returns the per-section combined peaks.
func (peaks *Peaks) SectionPeaks() []float64 {
	colourPeaks := peaks.Colour.GetCurrentStrainPeaks()
	rhythmPeaks := peaks.Rhythm.GetCurrentStrainPeaks()
	staminaPeaks := peaks.Stamina.GetCurrentStrainPeaks()

	combined := make([]float64, len(colourPeaks))

	for i := range colourPeaks {
		colourPeak := colourPeaks[i] * colourSkillMultiplier
		rhythmPeak := rhythmPeaks[i] * rhythmSkillMultiplier
		staminaPeak := staminaPeaks[i] * staminaSkillMultiplier

		peak := norm(1.5, colourPeak, staminaPeak)
		peak = norm(2, peak, rhythmPeak)

		combined[i] = peak
	}

	return combined
}

// DifficultyValue sums the sorted combined section peaks with a geometrically
// decaying weight.
func (peaks *Peaks) DifficultyValue() float64 {
	difficulty := 0.0
	weight := 1.0

	combined := peaks.SectionPeaks()
	combined = slices.DeleteFunc(combined, func(peak float64) bool { return peak <= 0 })

	slices.SortFunc(combined, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	for _, strain := range combined {
		difficulty += strain * weight
		weight *= 0.9
	}

	return difficulty
}

// norm is the p-norm of the given values.
func norm(p float64, values ...float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Pow(v, p)
	}

	return math.Pow(sum, 1/p)
}
