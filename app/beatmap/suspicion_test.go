package beatmap

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/framework/math/vector"
)

func circleAt(time float64, x, y float32) *objects.Circle {
	return &objects.Circle{HitObject: objects.HitObject{
		StartTime: time,
		EndTime:   time,
		StartPos:  vector.NewVec2f(x, y),
	}}
}

func sliderAt(time float64, x, y float32, repeats int) *objects.Slider {
	return &objects.Slider{
		HitObject: objects.HitObject{
			StartTime: time,
			EndTime:   time + 100,
			StartPos:  vector.NewVec2f(x, y),
		},
		RepeatCount: repeats,
		PixelLength: 100,
	}
}

func spacedCircles(count int, spacing float64) []objects.IHitObject {
	objs := make([]objects.IHitObject, 0, count)
	for i := 0; i < count; i++ {
		objs = append(objs, circleAt(float64(i)*spacing, 256, 192))
	}

	return objs
}

func requireSuspicion(t *testing.T, b *Beatmap, reason SuspicionReason) {
	t.Helper()

	err := CheckSuspicion(b)
	require.Error(t, err)

	var susErr *SuspicionError
	require.True(t, errors.As(err, &susErr))
	assert.Equal(t, reason, susErr.Reason)
}

func TestSuspicionCleanChart(t *testing.T) {
	b := &Beatmap{HitObjects: spacedCircles(1000, 100)}

	assert.NoError(t, CheckSuspicion(b))
}

func TestSuspicionObjectCountTaiko(t *testing.T) {
	b := &Beatmap{Mode: ModeTaiko, HitObjects: spacedCircles(20_001, 25)}

	requireSuspicion(t, b, SuspicionObjectCount)

	// The same chart is fine under the higher standard limit.
	b.Mode = ModeOsu
	assert.NoError(t, CheckSuspicion(b))
}

func TestSuspicionLength(t *testing.T) {
	b := &Beatmap{HitObjects: []objects.IHitObject{
		circleAt(0, 256, 192),
		circleAt(24*60*60*1000+1, 256, 192),
	}}

	requireSuspicion(t, b, SuspicionLength)
}

func TestSuspicionDensity(t *testing.T) {
	// 201 notes a millisecond apart is 1000 notes per second.
	b := &Beatmap{HitObjects: spacedCircles(201, 1)}
	requireSuspicion(t, b, SuspicionDensity)

	// 5ms spacing puts the 200-note window at exactly one second, which is
	// the last allowed density.
	assert.NoError(t, CheckSuspicion(&Beatmap{HitObjects: spacedCircles(201, 5)}))

	// Taiko tolerates twice the density.
	assert.NoError(t, CheckSuspicion(&Beatmap{Mode: ModeTaiko, HitObjects: spacedCircles(201, 1)}))
}

func TestSuspicionNonFinite(t *testing.T) {
	b := &Beatmap{HitObjects: []objects.IHitObject{
		circleAt(0, float32(math.NaN()), 192),
	}}

	requireSuspicion(t, b, SuspicionNonFiniteValue)
}

func TestSuspicionSliderPositions(t *testing.T) {
	build := func(count int) *Beatmap {
		objs := make([]objects.IHitObject, 0, count)
		for i := 0; i < count; i++ {
			objs = append(objs, sliderAt(float64(i)*100, 20_000, 0, 1))
		}

		return &Beatmap{HitObjects: objs}
	}

	// 128 far-off sliders are still tolerated, 129 are not.
	assert.NoError(t, CheckSuspicion(build(128)))
	requireSuspicion(t, build(129), SuspicionSliderPositions)
}

func TestSuspicionSliderRepeats(t *testing.T) {
	objs := make([]objects.IHitObject, 0, 129)
	for i := 0; i < 129; i++ {
		objs = append(objs, sliderAt(float64(i)*100, 256, 192, 1001))
	}

	requireSuspicion(t, &Beatmap{HitObjects: objs}, SuspicionSliderRepeats)
}

func TestSuspicionSliderRepeatsOffPlayfield(t *testing.T) {
	// Extreme repeats far off the playfield are refused without any counting.
	b := &Beatmap{HitObjects: []objects.IHitObject{
		sliderAt(0, 20_000, 0, 1001),
	}}

	requireSuspicion(t, b, SuspicionSliderRepeats)
}

func TestSuspicionIgnoresSlidersInTaiko(t *testing.T) {
	b := &Beatmap{Mode: ModeTaiko, HitObjects: []objects.IHitObject{
		sliderAt(0, 20_000, 0, 1001),
	}}

	assert.NoError(t, CheckSuspicion(b))
}
