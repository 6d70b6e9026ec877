package performance

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/app/rulesets/api"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
)

const (
	difficultyMultiplier float64 = 1.35
)

type DifficultyCalculator struct{}

func NewDifficultyCalculator() *DifficultyCalculator {
	return &DifficultyCalculator{}
}

func (diffCalc *DifficultyCalculator) getStars(peaks *Peaks, diff *difficulty.Difficulty, attr api.TaikoAttributes) api.TaikoAttributes {
	attr.Colour = peaks.ColourDifficultyValue() * difficultyMultiplier
	attr.Rhythm = peaks.RhythmDifficultyValue() * difficultyMultiplier
	attr.Stamina = peaks.StaminaDifficultyValue() * difficultyMultiplier

	attr.Peak = peaks.DifficultyValue() * difficultyMultiplier
	attr.Total = rescale(attr.Peak * 1.4)

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.TaikoAttributes) {
	// Only drum hits give combo; rolls and swells count as objects but not combo.
	if _, ok := o.(*objects.Circle); ok {
		attr.MaxCombo++
	}

	attr.ObjectCount++
}

func (diffCalc *DifficultyCalculator) baseAttribs(diff *difficulty.Difficulty) api.TaikoAttributes {
	return api.TaikoAttributes{
		GreatHitWindow: difficulty.DifficultyRate(diff.AdjustedOD(), 50, 35, 20) / diff.Speed,
		ClockRate:      diff.Speed,
		MaskedMods:     difficulty.GetDiffMaskedMods(diff.Mods),
	}
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(objs []objects.IHitObject, diff *difficulty.Difficulty) api.TaikoAttributes {
	attr := diffCalc.baseAttribs(diff)

	if len(objs) == 0 {
		return attr
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	peaks := NewPeaks(diff)

	for i, o := range objs {
		diffCalc.addObjectToAttribs(o, &attr)

		// The first two objects generate no difficulty object.
		if i >= 2 {
			peaks.Process(diffObjects[i-2])
		}
	}

	return diffCalc.getStars(peaks, diff, attr)
}

// CalculateStep calculates successive star ratings for every prefix of a beatmap
func (diffCalc *DifficultyCalculator) CalculateStep(objs []objects.IHitObject, diff *difficulty.Difficulty) []api.TaikoAttributes {
	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	peaks := NewPeaks(diff)

	stars := make([]api.TaikoAttributes, 0, len(objs))
	attr := diffCalc.baseAttribs(diff)

	for i, o := range objs {
		diffCalc.addObjectToAttribs(o, &attr)

		if i >= 2 {
			peaks.Process(diffObjects[i-2])
		}

		stars = append(stars, diffCalc.getStars(peaks, diff, attr))
	}

	return stars
}

// CalculateStrainPeaks returns the per-section strain peaks of every drum
// skill plus the combined peaks.
func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objs []objects.IHitObject, diff *difficulty.Difficulty) api.TaikoStrainPeaks {
	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	peaks := NewPeaks(diff)

	for _, o := range diffObjects {
		peaks.Process(o)
	}

	return api.TaikoStrainPeaks{
		Colour:  peaks.Colour.GetCurrentStrainPeaks(),
		Rhythm:  peaks.Rhythm.GetCurrentStrainPeaks(),
		Stamina: peaks.Stamina.GetCurrentStrainPeaks(),
		Total:   peaks.SectionPeaks(),
	}
}

// rescale bends the high end of the combined rating down to the familiar star
// scale.
func rescale(sr float64) float64 {
	if sr < 0 {
		return sr
	}

	return 10.43 * math.Log(sr/8+1)
}
