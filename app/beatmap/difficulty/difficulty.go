package difficulty

import (
	"math"

	"github.com/mekyu/rate-go/framework/math/mutils"
)

// Difficulty resolves a modifier bit-set against authored chart settings into
// the concrete values the calculators read: clock rate, circle radius, preempt
// and hit windows. "U" suffixed fields are on the authored timeline, i.e. not
// divided by the clock rate.
type Difficulty struct {
	hp float64
	cs float64
	od float64
	ar float64

	Mods Modifier

	// Speed is the clock rate multiplier resolved from Mods (or a custom rate).
	Speed float64

	ARReal float64
	ODReal float64

	CircleRadiusU float64
	PreemptU      float64
	Preempt       float64
	TimeFadeIn    float64

	Hit300U float64
	Hit100U float64
	Hit50U  float64

	Hit300 float64
	Hit100 float64
	Hit50  float64

	customSpeed float64
}

func NewDifficulty(hp, cs, od, ar float64) *Difficulty {
	diff := &Difficulty{
		hp: hp,
		cs: cs,
		od: od,
		ar: ar,
	}

	diff.calculate()

	return diff
}

func (diff *Difficulty) calculate() {
	speed := diff.Mods.GetSpeed()
	if diff.customSpeed > 0 {
		speed = diff.customSpeed
	}

	diff.Speed = speed

	multiplier := diff.Mods.GetDifficultyMultiplier()

	cs := diff.cs
	if diff.Mods.Active(HardRock) {
		cs = math.Min(cs*1.3, 10)
	} else if diff.Mods.Active(Easy) {
		cs /= 2
	}

	diff.CircleRadiusU = 32 * (1 - 0.7*(cs-5)/5)

	ar := mutils.Clamp(diff.ar*multiplier, 0, 10)
	diff.PreemptU = DifficultyRate(ar, 1800, 1200, 450)
	diff.Preempt = diff.PreemptU / speed

	if diff.Preempt > 1200 {
		diff.ARReal = (1800 - diff.Preempt) / 120
	} else {
		diff.ARReal = (1200-diff.Preempt)/150 + 5
	}

	diff.TimeFadeIn = 400 * math.Min(1, diff.PreemptU/450)
	if diff.Mods.Active(Hidden) {
		diff.TimeFadeIn = diff.PreemptU * 0.4
	}

	od := mutils.Clamp(diff.od*multiplier, 0, 10)
	diff.Hit300U = DifficultyRate(od, 80, 50, 20)
	diff.Hit100U = DifficultyRate(od, 140, 100, 60)
	diff.Hit50U = DifficultyRate(od, 200, 150, 100)

	diff.Hit300 = diff.Hit300U / speed
	diff.Hit100 = diff.Hit100U / speed
	diff.Hit50 = diff.Hit50U / speed

	diff.ODReal = (80 - diff.Hit300) / 6
}

// SetMods resolves a new modifier set. Modifiers not applicable to the
// calculation are carried but act as no-ops, so resolution never fails.
func (diff *Difficulty) SetMods(mods Modifier) {
	diff.Mods = mods.Compose()
	diff.calculate()
}

// SetCustomSpeed overrides the mod-derived clock rate. A value <= 0 restores
// the modifier-based rate.
func (diff *Difficulty) SetCustomSpeed(speed float64) {
	diff.customSpeed = speed
	diff.calculate()
}

func (diff *Difficulty) CheckModActive(mods Modifier) bool {
	return diff.Mods&mods > 0
}

func (diff *Difficulty) GetHP() float64 { return diff.hp }
func (diff *Difficulty) GetCS() float64 { return diff.cs }
func (diff *Difficulty) GetOD() float64 { return diff.od }
func (diff *Difficulty) GetAR() float64 { return diff.ar }

func (diff *Difficulty) Clone() *Difficulty {
	clone := *diff
	return &clone
}

// AdjustedOD is the 0-10 overall difficulty after modifier scaling, before
// clock rate. Rulesets with their own hit window scales derive them from it.
func (diff *Difficulty) AdjustedOD() float64 {
	return mutils.Clamp(diff.od*diff.Mods.GetDifficultyMultiplier(), 0, 10)
}

// DifficultyRate maps a 0-10 difficulty value onto its millisecond scale.
func DifficultyRate(diff, minV, mid, maxV float64) float64 {
	switch {
	case diff > 5:
		return mid + (maxV-mid)*(diff-5)/5
	case diff < 5:
		return mid - (mid-minV)*(5-diff)/5
	default:
		return mid
	}
}
