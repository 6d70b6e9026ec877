package objects

import (
	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/framework/math/vector"
)

const (
	// PlayfieldWidth and PlayfieldHeight are the nominal playfield dimensions in osupixels.
	PlayfieldWidth  = 512
	PlayfieldHeight = 384
)

// Hit sound bits, used by the taiko ruleset to tell rim hits from centre hits.
const (
	SoundNormal = 1 << iota
	SoundWhistle
	SoundFinish
	SoundClap
)

type IHitObject interface {
	GetStartTime() float64
	GetEndTime() float64
	GetStartPosition() vector.Vector2f
	GetStackedStartPosition() vector.Vector2f
	GetStackedStartPositionMod(mods difficulty.Modifier) vector.Vector2f
	GetHitSound() int
	IsNewCombo() bool
	SetStackOffset(offset vector.Vector2f)
}

// HitObject carries the state shared by every object kind. Positions are
// immutable after decoding except for the stack offset, which the builder
// resolves once before difficulty objects are created.
type HitObject struct {
	StartTime float64
	EndTime   float64

	StartPos    vector.Vector2f
	stackOffset vector.Vector2f

	HitSound int
	NewCombo bool
}

func (h *HitObject) GetStartTime() float64 {
	return h.StartTime
}

func (h *HitObject) GetEndTime() float64 {
	return h.EndTime
}

func (h *HitObject) GetStartPosition() vector.Vector2f {
	return h.StartPos
}

func (h *HitObject) GetStackedStartPosition() vector.Vector2f {
	return h.StartPos.Add(h.stackOffset)
}

func (h *HitObject) GetStackedStartPositionMod(mods difficulty.Modifier) vector.Vector2f {
	pos := h.GetStackedStartPosition()

	if mods.Active(difficulty.HardRock) {
		pos.Y = PlayfieldHeight - pos.Y
	}

	return pos
}

func (h *HitObject) GetHitSound() int {
	return h.HitSound
}

func (h *HitObject) IsNewCombo() bool {
	return h.NewCombo
}

func (h *HitObject) SetStackOffset(offset vector.Vector2f) {
	h.stackOffset = offset
}

type Circle struct {
	HitObject
}

type Spinner struct {
	HitObject
}

// Slider holds the decoded path of a slider-like object. The path is kept as a
// polyline resampled from the control points; calculators never read the raw
// control points directly.
type Slider struct {
	HitObject

	ControlPoints []vector.Vector2f
	PixelLength   float64
	RepeatCount   int // number of spans, 1 for a non-repeating slider

	// TickCount is the number of slider ticks per span.
	TickCount int

	path *Path
}

// NestedObjectCount is the number of combo-giving nested objects excluding the
// slider head: ticks, repeat arrows and the tail.
func (s *Slider) NestedObjectCount() int {
	return s.RepeatCount*s.TickCount + s.RepeatCount
}

func (s *Slider) GetLength() float64 {
	return s.PixelLength
}

func (s *Slider) GetDuration() float64 {
	return s.EndTime - s.StartTime
}

// SpanDuration is the duration of a single traversal of the path.
func (s *Slider) SpanDuration() float64 {
	return s.GetDuration() / float64(max(1, s.RepeatCount))
}

// GetPath lazily builds the arc-length parametrized polyline of the slider.
func (s *Slider) GetPath() *Path {
	if s.path == nil {
		s.path = NewPath(s.ControlPoints, s.PixelLength)
	}

	return s.path
}

// PositionAt returns the playfield position at progress t in [0,1] of a single
// span, relative to the slider start.
func (s *Slider) PositionAt(t float64) vector.Vector2f {
	return s.GetPath().PositionAt(t)
}

// PositionAtTime returns the position at an absolute time, following repeats.
func (s *Slider) PositionAtTime(time float64) vector.Vector2f {
	progress := progressAt(time, s.StartTime, s.SpanDuration(), s.RepeatCount)
	return s.StartPos.Add(s.PositionAt(progress).Sub(s.ControlPoints[0]))
}

func progressAt(time, startTime, spanDuration float64, spans int) float64 {
	if spanDuration <= 0 {
		return 0
	}

	progress := (time - startTime) / spanDuration
	if progress < 0 {
		progress = 0
	}

	if spans > 0 && progress > float64(spans) {
		progress = float64(spans)
	}

	whole := int(progress)
	frac := progress - float64(whole)

	if whole%2 == 1 {
		frac = 1 - frac
	}

	return frac
}
