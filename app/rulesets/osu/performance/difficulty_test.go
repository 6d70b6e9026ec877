package performance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
	"github.com/mekyu/rate-go/framework/math/vector"
)

func testCircle(time float64, x, y float32) *objects.Circle {
	return &objects.Circle{HitObject: objects.HitObject{
		StartTime: time,
		EndTime:   time,
		StartPos:  vector.NewVec2f(x, y),
	}}
}

func testSlider(time float64, x, y float32) *objects.Slider {
	return &objects.Slider{
		HitObject: objects.HitObject{
			StartTime: time,
			EndTime:   time + 300,
			StartPos:  vector.NewVec2f(x, y),
		},
		ControlPoints: []vector.Vector2f{vector.NewVec2f(x, y), vector.NewVec2f(x+120, y)},
		PixelLength:   120,
		RepeatCount:   1,
	}
}

// testChart is a deterministic jump pattern: positions cycle over the
// playfield so aim, speed and angle history all stay busy.
func testChart(count int) []objects.IHitObject {
	objs := make([]objects.IHitObject, 0, count)

	for i := 0; i < count; i++ {
		x := float32(64 + (i%2)*384)
		y := float32(64 + (i%3)*128)

		objs = append(objs, testCircle(float64(i)*150, x, y))
	}

	return objs
}

func testDiff(mods difficulty.Modifier) *difficulty.Difficulty {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)
	diff.SetMods(mods)

	return diff
}

func TestCalculateSingleDeterministic(t *testing.T) {
	objs := testChart(200)
	diff := testDiff(difficulty.None)

	first := NewDifficultyCalculator().CalculateSingle(objs, diff)
	second := NewDifficultyCalculator().CalculateSingle(objs, diff)

	require.Equal(t, first, second)
	assert.Greater(t, first.Total, 0.0)
	assert.Greater(t, first.Aim, 0.0)
	assert.Greater(t, first.Speed, 0.0)
}

func TestCalculateSingleEmpty(t *testing.T) {
	diff := testDiff(difficulty.DoubleTime)

	attr := NewDifficultyCalculator().CalculateSingle(nil, diff)

	assert.Zero(t, attr.Total)
	assert.Zero(t, attr.ObjectCount)
	assert.Equal(t, 1.5, attr.ClockRate)
}

func TestCalculateStepMatchesSingle(t *testing.T) {
	objs := testChart(120)
	diff := testDiff(difficulty.None)

	calc := NewDifficultyCalculator()

	stars := calc.CalculateStep(objs, diff)
	require.Len(t, stars, len(objs))

	single := calc.CalculateSingle(objs, diff)

	assert.Equal(t, single, stars[len(stars)-1])
}

func TestObjectCounting(t *testing.T) {
	objs := []objects.IHitObject{
		testCircle(0, 64, 64),
		testCircle(300, 200, 64),
		testSlider(600, 300, 64),
		testCircle(1200, 400, 200),
		&objects.Spinner{HitObject: objects.HitObject{StartTime: 1500, EndTime: 2000, StartPos: vector.NewVec2f(256, 192)}},
	}

	attr := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.None))

	assert.Equal(t, 5, attr.ObjectCount)
	assert.Equal(t, 3, attr.Circles)
	assert.Equal(t, 1, attr.Sliders)
	assert.Equal(t, 1, attr.Spinners)

	// One combo per object plus the slider's nested tail.
	assert.Equal(t, 6, attr.MaxCombo)
}

func TestRelaxZeroesSpeedRating(t *testing.T) {
	objs := testChart(200)

	relaxed := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.Relax))
	normal := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.None))

	assert.Zero(t, relaxed.Speed)
	assert.InDelta(t, normal.Aim*0.9, relaxed.Aim, 1e-9)
	assert.Less(t, relaxed.Total, normal.Total)
}

func TestTouchDeviceAdjustsRatings(t *testing.T) {
	objs := testChart(200)

	touch := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.TouchDevice))
	normal := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.None))

	assert.InDelta(t, math.Pow(normal.Aim, 0.8), touch.Aim, 1e-9)
	assert.InDelta(t, math.Pow(normal.Flashlight, 0.8), touch.Flashlight, 1e-9)
	assert.Equal(t, normal.Speed, touch.Speed)
}

func TestDoubleTimeRaisesRatings(t *testing.T) {
	objs := testChart(200)

	doubled := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.DoubleTime))
	normal := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.None))

	assert.Greater(t, doubled.Speed, normal.Speed)
	assert.Greater(t, doubled.Total, normal.Total)
	assert.Equal(t, 1.5, doubled.ClockRate)
}

func TestSliderFactorBounds(t *testing.T) {
	objs := make([]objects.IHitObject, 0, 60)
	for i := 0; i < 30; i++ {
		objs = append(objs, testCircle(float64(i)*600, float32(64+(i%2)*384), 64))
		objs = append(objs, testSlider(float64(i)*600+300, float32(200+(i%2)*64), 200))
	}

	attr := NewDifficultyCalculator().CalculateSingle(objs, testDiff(difficulty.None))

	assert.Greater(t, attr.SliderFactor, 0.0)
	assert.LessOrEqual(t, attr.SliderFactor, 1.0)
}

func TestStrainRetentionGate(t *testing.T) {
	objs := testChart(120)
	diff := testDiff(difficulty.None)

	diffObjects := preprocessing.CreateDifficultyObjects(objs, diff)

	retained := NewSkillsProcessor(diff, true)
	compact := NewSkillsProcessor(diff, false)

	for _, o := range diffObjects {
		retained.Process(o)
		compact.Process(o)
	}

	retained.Aim.DifficultyValue()
	compact.Aim.DifficultyValue()

	assert.Greater(t, retained.Aim.CountDifficultStrains(), 0.0)
	assert.Greater(t, retained.Speed.RelevantNoteCount(), 0.0)

	// Compact skills keep only the section peaks.
	assert.Zero(t, compact.Aim.CountDifficultStrains())
	assert.Zero(t, compact.Speed.RelevantNoteCount())

	assert.Equal(t, retained.Aim.GetCurrentStrainPeaks(), compact.Aim.GetCurrentStrainPeaks())
}

func TestCalculateStrainPeaks(t *testing.T) {
	objs := testChart(200)

	peaks := NewDifficultyCalculator().CalculateStrainPeaks(objs, testDiff(difficulty.None))

	require.NotEmpty(t, peaks.Aim)
	assert.Len(t, peaks.Speed, len(peaks.Aim))
	assert.Len(t, peaks.Flashlight, len(peaks.Aim))
	assert.Len(t, peaks.Total, len(peaks.Aim))

	// 200 objects at 150ms spacing span 74 strain sections.
	assert.Greater(t, len(peaks.Aim), 10)

	for i := range peaks.Total {
		assert.GreaterOrEqual(t, peaks.Total[i], 0.0)
	}
}
