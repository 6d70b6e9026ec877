package performance

import (
	"log"
	"math"
	"time"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/app/rulesets/api"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/skills"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0668
)

type DifficultyCalculator struct{}

func NewDifficultyCalculator() *DifficultyCalculator {
	return &DifficultyCalculator{}
}

// getStarsFromRawValues converts raw skill values to Attributes
func (diffCalc *DifficultyCalculator) getStarsFromRawValues(rawAim, rawAimNoSliders, rawSpeed, rawFlashlight float64, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	aimRatingNoSliders := math.Sqrt(rawAimNoSliders) * StarScalingFactor
	speedRating := math.Sqrt(rawSpeed) * StarScalingFactor
	flashlightRating := math.Sqrt(rawFlashlight) * StarScalingFactor

	sliderFactor := 1.0
	if aimRating > 0.00001 {
		sliderFactor = aimRatingNoSliders / aimRating
	}

	if diff.CheckModActive(difficulty.TouchDevice) {
		aimRating = math.Pow(aimRating, 0.8)
		flashlightRating = math.Pow(flashlightRating, 0.8)
	}

	if diff.CheckModActive(difficulty.Relax) {
		aimRating *= 0.9
		speedRating = 0
		flashlightRating *= 0.7
	}

	baseAimPerformance := skills.DefaultDifficultyToPerformance(aimRating)
	baseSpeedPerformance := skills.DefaultDifficultyToPerformance(speedRating)

	baseFlashlightPerformance := 0.0
	if diff.CheckModActive(difficulty.Flashlight) {
		baseFlashlightPerformance = skills.FlashlightDifficultyToPerformance(flashlightRating)
	}

	basePerformance := math.Pow(
		math.Pow(baseAimPerformance, 1.1)+
			math.Pow(baseSpeedPerformance, 1.1)+
			math.Pow(baseFlashlightPerformance, 1.1),
		1.0/1.1,
	)

	var total float64
	if basePerformance > 0.00001 {
		total = math.Cbrt(PerformanceBaseMultiplier) * 0.027 * (math.Cbrt(100000/math.Pow(2, 1/1.1)*basePerformance) + 4)
	}

	attr.Total = total
	attr.Aim = aimRating
	attr.SliderFactor = sliderFactor
	attr.Speed = speedRating
	attr.Flashlight = flashlightRating
	attr.ClockRate = diff.Speed
	attr.MaskedMods = difficulty.GetDiffMaskedMods(diff.Mods)

	return attr
}

// Retrieves skill values and converts to Attributes
func (diffCalc *DifficultyCalculator) getStars(proc *SkillsProcessor, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	attr = diffCalc.getStarsFromRawValues(
		proc.Aim.DifficultyValue(),
		proc.AimWithoutSliders.DifficultyValue(),
		proc.Speed.DifficultyValue(),
		proc.Flashlight.DifficultyValue(),
		diff,
		attr,
	)

	attr.SpeedNoteCount = proc.Speed.RelevantNoteCount()
	attr.AimDifficultStrainCount = proc.Aim.CountDifficultStrains()
	attr.SpeedDifficultStrainCount = proc.Speed.CountDifficultStrains()

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.Attributes) {
	if s, ok := o.(*objects.Slider); ok {
		attr.Sliders++
		attr.MaxCombo += s.NestedObjectCount()
	} else if _, ok := o.(*objects.Circle); ok {
		attr.Circles++
	} else if _, ok := o.(*objects.Spinner); ok {
		attr.Spinners++
	}

	attr.MaxCombo++
	attr.ObjectCount++
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(objs []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	attr := api.Attributes{
		ClockRate:  diff.Speed,
		MaskedMods: difficulty.GetDiffMaskedMods(diff.Mods),
	}

	if len(objs) == 0 {
		return attr
	}

	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	proc := NewSkillsProcessor(diff, true)

	diffCalc.addObjectToAttribs(objs[0], &attr)

	for i, o := range diffObjects {
		diffCalc.addObjectToAttribs(objs[i+1], &attr)

		proc.Process(o)
	}

	return diffCalc.getStars(proc, diff, attr)
}

// CalculateStep calculates successive star ratings for every prefix of a beatmap
func (diffCalc *DifficultyCalculator) CalculateStep(objs []objects.IHitObject, diff *difficulty.Difficulty) []api.Attributes {
	if len(objs) == 0 {
		return nil
	}

	modString := difficulty.GetDiffMaskedMods(diff.Mods).String()
	if modString == "" {
		modString = "NM"
	}

	log.Println("Calculating step SR for mods:", modString)

	startTime := time.Now()

	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	proc := NewSkillsProcessor(diff, true)

	stars := make([]api.Attributes, 1, len(objs))

	diffCalc.addObjectToAttribs(objs[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		diffCalc.addObjectToAttribs(objs[i+1], &attr)

		proc.Process(o)

		stars = append(stars, diffCalc.getStars(proc, diff, attr))
	}

	endTime := time.Now()

	log.Println("Calculations finished! Took ", endTime.Sub(startTime).Truncate(time.Millisecond).String())

	return stars
}

// CalculateStrainPeaks returns the per-section strain peaks of every skill plus
// the peaks passed through the star rating formula.
func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(objs []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	// Only the section peaks are read here, so per-object strains are not retained.
	proc := NewSkillsProcessor(diff, false)

	for _, o := range diffObjects {
		proc.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:        proc.Aim.GetCurrentStrainPeaks(),
		Speed:      proc.Speed.GetCurrentStrainPeaks(),
		Flashlight: proc.Flashlight.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := diffCalc.getStarsFromRawValues(peaks.Aim[i], peaks.Aim[i], peaks.Speed[i], peaks.Flashlight[i], diff, api.Attributes{})
		peaks.Total[i] = stars.Total
	}

	return peaks
}
