package api

import (
	"github.com/mekyu/rate-go/app/beatmap/difficulty"
)

// Attributes is the immutable difficulty result bundle for the osu ruleset.
// Together with a ScoreState it is everything the performance calculator
// needs; the raw object sequence is deliberately not part of it.
type Attributes struct {
	// Total star rating, visible on a beatmap page
	Total float64

	// Aim stars, needed for performance calculations
	Aim float64

	// Speed stars, needed for performance calculations
	Speed float64

	SpeedNoteCount float64

	AimDifficultStrainCount   float64
	SpeedDifficultStrainCount float64

	// Flashlight stars, needed for performance calculations
	Flashlight float64

	// SliderFactor is a ratio of Aim calculated without sliders to Aim with them
	SliderFactor float64

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	MaxCombo    int

	// ClockRate and MaskedMods record the modifier effects the attributes were
	// produced under, so a performance call with a different set is detectable.
	ClockRate  float64
	MaskedMods difficulty.Modifier
}

// TaikoAttributes is the difficulty result bundle for the taiko ruleset.
type TaikoAttributes struct {
	Total float64

	Colour  float64
	Rhythm  float64
	Stamina float64

	// Peak is the combined-skill rating the star rating derives from.
	Peak float64

	// GreatHitWindow is the clock-rate adjusted 300 window in ms.
	GreatHitWindow float64

	ObjectCount int
	MaxCombo    int

	ClockRate  float64
	MaskedMods difficulty.Modifier
}

// StrainPeaks contains per-section peaks of every osu skill, as well as the
// peaks passed through the star rating formula.
type StrainPeaks struct {
	// Aim peaks
	Aim []float64

	// Speed peaks
	Speed []float64

	// Flashlight peaks
	Flashlight []float64

	// Total contains aim, speed and flashlight peaks passed through the star rating formula
	Total []float64
}

// TaikoStrainPeaks mirrors StrainPeaks for the taiko skills.
type TaikoStrainPeaks struct {
	Colour  []float64
	Rhythm  []float64
	Stamina []float64

	Total []float64
}

type PPv2Results struct {
	Aim, Speed, Acc, Flashlight, Total float64

	EffectiveMissCount float64

	// Difficulty carries the attributes the values were produced from, so
	// related queries need no recomputation.
	Difficulty Attributes
}

type TaikoPPResults struct {
	Difficulty, Acc, Total float64

	EffectiveMissCount float64

	Attributes TaikoAttributes
}
