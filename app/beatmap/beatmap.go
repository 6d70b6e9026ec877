package beatmap

import (
	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
)

type Mode int

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

func (m Mode) String() string {
	switch m {
	case ModeOsu:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "catch"
	case ModeMania:
		return "mania"
	}

	return "unknown"
}

// Beatmap is the decoded chart: settings plus the time-ordered object list.
// It is immutable once decoded; calculators only borrow it.
type Beatmap struct {
	Name    string
	Version string

	Mode Mode

	HP float64
	CS float64
	OD float64
	AR float64

	SliderMultiplier float64
	TickRate         float64

	HitObjects []objects.IHitObject

	timings []timingPoint
}

type timingPoint struct {
	time       float64
	beatLength float64
	sliderMult float64 // inverse SV from inherited points
}

// NewDifficulty builds a fresh modifier resolver for this chart's settings.
func (b *Beatmap) NewDifficulty() *difficulty.Difficulty {
	return difficulty.NewDifficulty(b.HP, b.CS, b.OD, b.AR)
}

// Length is the authored time span between the first and last object in ms.
func (b *Beatmap) Length() float64 {
	if len(b.HitObjects) < 2 {
		return 0
	}

	return b.HitObjects[len(b.HitObjects)-1].GetStartTime() - b.HitObjects[0].GetStartTime()
}

func (b *Beatmap) timingAt(time float64) (beatLength, sliderMult float64) {
	beatLength = 500
	sliderMult = 1

	for _, point := range b.timings {
		if point.time > time {
			break
		}

		if point.beatLength > 0 {
			beatLength = point.beatLength
		}

		sliderMult = point.sliderMult
	}

	return beatLength, sliderMult
}
