package performance

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/app/rulesets/api"
)

/* ------------------------------------------------------------- */
/* pp calc                                                       */

// TaikoPP rates one drum play against precomputed difficulty attributes.
type TaikoPP struct {
	attribs api.TaikoAttributes

	scoreMaxCombo int
	countGreat    int
	countOk       int
	countMiss     int

	effectiveMissCount float64

	diff *difficulty.Difficulty
}

func NewPPCalculator() *TaikoPP {
	return &TaikoPP{}
}

// CalculatePerformance rates a score state against a chart in one call,
// deriving the difficulty attributes internally. Callers rating many plays of
// the same chart should compute the attributes once and use Calculate instead.
func CalculatePerformance(objs []objects.IHitObject, diff *difficulty.Difficulty, state api.ScoreState) (api.TaikoPPResults, error) {
	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	return NewPPCalculator().Calculate(attr, state, diff)
}

// Calculate rates a score state. The attributes must have been produced under
// the same modifier set and clock rate; a mismatch is reported instead of
// silently producing garbage. The meh count is ignored, the drum ruleset has
// no such judgement.
func (pp *TaikoPP) Calculate(attribs api.TaikoAttributes, state api.ScoreState, diff *difficulty.Difficulty) (api.TaikoPPResults, error) {
	if attribs.MaskedMods != difficulty.GetDiffMaskedMods(diff.Mods) || attribs.ClockRate != diff.Speed {
		return api.TaikoPPResults{}, api.ErrMismatchedModifiers
	}

	state.CountMeh = 0
	state = state.Clamp(attribs.MaxCombo)

	pp.attribs = attribs
	pp.diff = diff
	pp.scoreMaxCombo = state.MaxCombo
	pp.countGreat = state.CountGreat
	pp.countOk = state.CountOk
	pp.countMiss = state.CountMiss

	// The effective miss count raises the miss penalty on shorter maps, where
	// every single break costs proportionally more.
	totalSuccessfulHits := pp.countGreat + pp.countOk
	if totalSuccessfulHits > 0 {
		pp.effectiveMissCount = max(1.0, 1000.0/float64(totalSuccessfulHits)) * float64(pp.countMiss)
	} else {
		pp.effectiveMissCount = 0
	}

	multiplier := 1.13

	if diff.Mods.Active(difficulty.Hidden) {
		multiplier *= 1.075
	}

	if diff.Mods.Active(difficulty.Easy) {
		multiplier *= 0.975
	}

	diffValue := pp.computeDifficultyValue()
	accValue := pp.computeAccuracyValue()

	totalValue := math.Pow(
		math.Pow(diffValue, 1.1)+
			math.Pow(accValue, 1.1),
		1.0/1.1,
	) * multiplier

	return api.TaikoPPResults{
		Difficulty:         diffValue,
		Acc:                accValue,
		Total:              totalValue,
		EffectiveMissCount: pp.effectiveMissCount,
		Attributes:         attribs,
	}, nil
}

func (pp *TaikoPP) computeDifficultyValue() float64 {
	expBase := 5*max(1, pp.attribs.Total/0.115) - 4
	diffValue := math.Pow(expBase, 2.25) / 1150

	lengthBonus := 1 + 0.1*min(1, float64(pp.attribs.MaxCombo)/1500)
	diffValue *= lengthBonus

	diffValue *= math.Pow(0.986, pp.effectiveMissCount)

	if pp.diff.Mods.Active(difficulty.Easy) {
		diffValue *= 0.985
	}

	if pp.diff.Mods.Active(difficulty.Hidden) {
		diffValue *= 1.025
	}

	if pp.diff.Mods.Active(difficulty.HardRock) {
		diffValue *= 1.05
	}

	if pp.diff.Mods.Active(difficulty.Flashlight) {
		diffValue *= 1.05 * lengthBonus
	}

	acc := pp.customAccuracy()

	return diffValue * acc * acc
}

func (pp *TaikoPP) computeAccuracyValue() float64 {
	if pp.attribs.GreatHitWindow <= 0 {
		return 0
	}

	accValue := math.Pow(60/pp.attribs.GreatHitWindow, 1.1) *
		math.Pow(pp.customAccuracy(), 8) *
		math.Pow(pp.attribs.Total, 0.4) *
		27

	lengthBonus := min(1.15, math.Pow(pp.totalHits()/1500, 0.3))
	accValue *= lengthBonus

	// Slight HDFL bonus for accuracy. A clamp is used to prevent against negative values.
	if pp.diff.Mods.Active(difficulty.Hidden) && pp.diff.Mods.Active(difficulty.Flashlight) {
		accValue *= max(1.075*lengthBonus, 1.05)
	}

	return accValue
}

func (pp *TaikoPP) totalHits() float64 {
	return float64(pp.countGreat + pp.countOk + pp.countMiss)
}

func (pp *TaikoPP) customAccuracy() float64 {
	totalHits := pp.countGreat + pp.countOk + pp.countMiss

	if totalHits == 0 {
		return 0
	}

	return float64(pp.countGreat*300+pp.countOk*150) / float64(totalHits*300)
}
