package preprocessing

import (
	"math"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/framework/math/vector"
)

// Tail leniency of the lazer judgement point, in ms before the actual end time.
const tailLeniency = 36.0

// LazySlider wraps a decoded slider with the path a player actually has to
// follow: the cursor only leaves the follow circle when forced to, so the
// effective travel is shorter than the authored path.
type LazySlider struct {
	*objects.Slider

	Diff *difficulty.Difficulty

	// LazyEndPosition is where the simulated cursor rests when tracking ends.
	LazyEndPosition vector.Vector2f

	// LazyTravelDistance is in normalized (radius-scaled) units.
	LazyTravelDistance float32

	LazyTravelTime float64

	// EndTimeLazer is the judgement time of the slider tail.
	EndTimeLazer float64
}

func NewLazySlider(slider *objects.Slider, d *difficulty.Difficulty) *LazySlider {
	ls := &LazySlider{
		Slider: slider,
		Diff:   d,
	}

	ls.EndTimeLazer = math.Max(slider.GetStartTime()+slider.GetDuration()/2, slider.GetEndTime()-tailLeniency)

	ls.computeLazyPath()

	return ls
}

// GetStackedPositionAtModLazer is the judgement-time cursor target of the tail,
// mirrored for geometry-changing modifiers like the start position is.
func (ls *LazySlider) GetStackedPositionAtModLazer(time float64, mods difficulty.Modifier) vector.Vector2f {
	pos := ls.PositionAtTime(math.Min(time, ls.GetEndTime()))

	if mods.Active(difficulty.HardRock) {
		pos.Y = objects.PlayfieldHeight - pos.Y
	}

	return pos
}

type nestedPoint struct {
	time   float64
	isLast bool
}

func (ls *LazySlider) nestedPoints() []nestedPoint {
	spans := max(1, ls.RepeatCount)
	spanDuration := ls.SpanDuration()

	var nested []nestedPoint

	for span := 0; span < spans; span++ {
		spanStart := ls.GetStartTime() + float64(span)*spanDuration

		for tick := 1; tick <= ls.TickCount; tick++ {
			offset := spanDuration * float64(tick) / float64(ls.TickCount+1)
			nested = append(nested, nestedPoint{time: spanStart + offset})
		}

		if span < spans-1 {
			nested = append(nested, nestedPoint{time: spanStart + spanDuration})
		}
	}

	nested = append(nested, nestedPoint{time: ls.EndTimeLazer, isLast: true})

	return nested
}

func (ls *LazySlider) computeLazyPath() {
	scalingFactor := NormalizedRadius / ls.Diff.CircleRadiusU

	currCursorPosition := ls.GetStackedStartPosition()

	for _, nested := range ls.nestedPoints() {
		currMovementObj := ls.PositionAtTime(nested.time)
		currMovement := currMovementObj.Sub(currCursorPosition)
		currMovementLength := scalingFactor * float64(currMovement.Len())

		// The cursor only needs to move once the target leaves the follow area.
		requiredMovement := assumedSliderRadius

		if currMovementLength > requiredMovement {
			currCursorPosition = currCursorPosition.Add(currMovement.Nor().Scl(float32((currMovementLength - requiredMovement) / scalingFactor)))
			currMovementLength *= (currMovementLength - requiredMovement) / currMovementLength
			ls.LazyTravelDistance += float32(currMovementLength)
		}

		if nested.isLast {
			ls.LazyEndPosition = currCursorPosition
			ls.LazyTravelTime = nested.time - ls.GetStartTime()
		}
	}
}
