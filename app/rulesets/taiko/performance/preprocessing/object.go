package preprocessing

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
)

type HitType int

const (
	HitTypeCentre HitType = iota
	HitTypeRim
)

// HitObjectRhythm is one entry of the fixed rhythm change table; every note is
// snapped to the closest entry by its delta time ratio.
type HitObjectRhythm struct {
	Ratio      float64
	Difficulty float64
}

var commonRhythms = []*HitObjectRhythm{
	{Ratio: 1.0 / 1.0, Difficulty: 0.0},
	{Ratio: 2.0 / 1.0, Difficulty: 0.3},
	{Ratio: 1.0 / 2.0, Difficulty: 0.5},
	{Ratio: 3.0 / 1.0, Difficulty: 0.3},
	{Ratio: 1.0 / 3.0, Difficulty: 0.35},
	{Ratio: 3.0 / 2.0, Difficulty: 0.6},
	{Ratio: 5.0 / 4.0, Difficulty: 0.5},
	{Ratio: 7.0 / 4.0, Difficulty: 0.5},
}

// TaikoDifficultyObject is one relational record per consecutive object pair
// on the drum timeline: clock-rate adjusted deltas, the note colour and the
// snapped rhythm change. Colour pattern fields are filled by a second pass in
// ProcessColours.
type TaikoDifficultyObject struct {
	listOfDiffs *[]*TaikoDifficultyObject
	noteObjects *[]*TaikoDifficultyObject
	monoObjects *[]*TaikoDifficultyObject

	Index     int
	NoteIndex int
	MonoIndex int

	Diff *difficulty.Difficulty

	BaseObject objects.IHitObject

	// IsNote is true for drum hits; drum rolls and swells carry no colour or rhythm.
	IsNote  bool
	HitType HitType

	DeltaTime float64
	StartTime float64
	EndTime   float64

	GreatWindow float64

	Rhythm *HitObjectRhythm

	Colour ColourData
}

// ColourData points the object at the colour patterns it opens, if any.
type ColourData struct {
	MonoStreak          *MonoStreak
	AlternatingPattern  *AlternatingMonoPattern
	RepeatingHitPattern *RepeatingHitPatterns
}

// IsRim decides the note colour from the authored hitsound additions.
func IsRim(hitSound int) bool {
	return hitSound&(objects.SoundWhistle|objects.SoundClap) > 0
}

// CreateDifficultyObjects converts the raw object sequence into the taiko
// difficulty object sequence and runs the colour pattern pass over it. The
// sequence starts at the third object; the rhythm snap needs two preceding
// intervals.
func CreateDifficultyObjects(hitObjects []objects.IHitObject, d *difficulty.Difficulty) []*TaikoDifficultyObject {
	if len(hitObjects) < 3 {
		return nil
	}

	diffObjects := make([]*TaikoDifficultyObject, 0, len(hitObjects)-2)
	noteObjects := make([]*TaikoDifficultyObject, 0, len(hitObjects)-2)
	centreObjects := make([]*TaikoDifficultyObject, 0)
	rimObjects := make([]*TaikoDifficultyObject, 0)

	greatWindow := difficulty.DifficultyRate(d.AdjustedOD(), 50, 35, 20) / d.Speed

	for i := 2; i < len(hitObjects); i++ {
		current := hitObjects[i]

		obj := &TaikoDifficultyObject{
			listOfDiffs: &diffObjects,
			noteObjects: &noteObjects,
			Index:       i - 2,
			NoteIndex:   -1,
			MonoIndex:   -1,
			Diff:        d,
			BaseObject:  current,
			DeltaTime:   (current.GetStartTime() - hitObjects[i-1].GetStartTime()) / d.Speed,
			StartTime:   current.GetStartTime() / d.Speed,
			EndTime:     current.GetEndTime() / d.Speed,
			GreatWindow: greatWindow,
			Rhythm:      closestRhythm(current, hitObjects[i-1], hitObjects[i-2], d.Speed),
		}

		if _, ok := current.(*objects.Circle); ok {
			obj.IsNote = true

			if IsRim(current.GetHitSound()) {
				obj.HitType = HitTypeRim
				obj.MonoIndex = len(rimObjects)
				rimObjects = append(rimObjects, obj)
				obj.monoObjects = &rimObjects
			} else {
				obj.HitType = HitTypeCentre
				obj.MonoIndex = len(centreObjects)
				centreObjects = append(centreObjects, obj)
				obj.monoObjects = &centreObjects
			}

			obj.NoteIndex = len(noteObjects)
			noteObjects = append(noteObjects, obj)
		}

		diffObjects = append(diffObjects, obj)
	}

	ProcessColours(diffObjects)

	return diffObjects
}

// closestRhythm snaps the delta time ratio of two consecutive intervals to the
// common rhythm table.
func closestRhythm(current, lastObject, lastLastObject objects.IHitObject, clockRate float64) *HitObjectRhythm {
	prevLength := (lastObject.GetStartTime() - lastLastObject.GetStartTime()) / clockRate
	if prevLength == 0 {
		return commonRhythms[0]
	}

	ratio := (current.GetStartTime() - lastObject.GetStartTime()) / clockRate / prevLength

	closest := commonRhythms[0]
	for _, rhythm := range commonRhythms {
		if math.Abs(rhythm.Ratio-ratio) < math.Abs(closest.Ratio-ratio) {
			closest = rhythm
		}
	}

	return closest
}

func (o *TaikoDifficultyObject) Previous(backwardsIndex int) *TaikoDifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *TaikoDifficultyObject) Next(forwardsIndex int) *TaikoDifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

// PreviousNote walks back over drum hits only.
func (o *TaikoDifficultyObject) PreviousNote(backwardsIndex int) *TaikoDifficultyObject {
	if o.NoteIndex < 0 {
		return nil
	}

	index := o.NoteIndex - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.noteObjects)[index]
}

// PreviousMono walks back over drum hits of the same colour only.
func (o *TaikoDifficultyObject) PreviousMono(backwardsIndex int) *TaikoDifficultyObject {
	if o.MonoIndex < 0 {
		return nil
	}

	index := o.MonoIndex - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.monoObjects)[index]
}
