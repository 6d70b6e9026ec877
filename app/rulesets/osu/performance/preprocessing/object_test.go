package preprocessing

import (
	"math"
	"testing"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
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

func TestCreateDifficultyObjectsLength(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	objs := []objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(500, 100, 0),
		circleAt(1000, 200, 0),
	}

	diffObjects := CreateDifficultyObjects(objs, diff)

	if len(diffObjects) != 2 {
		t.Fatalf("len = %d, want one per consecutive pair", len(diffObjects))
	}

	if diffObjects[0].Index != 0 || diffObjects[1].Index != 1 {
		t.Errorf("indices = %d, %d", diffObjects[0].Index, diffObjects[1].Index)
	}

	if CreateDifficultyObjects(nil, diff) != nil {
		t.Error("empty input should yield no difficulty objects")
	}
}

func TestDeltaTimeClockRate(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)
	diff.SetMods(difficulty.DoubleTime)

	objs := []objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(600, 100, 0),
	}

	diffObjects := CreateDifficultyObjects(objs, diff)

	if math.Abs(diffObjects[0].DeltaTime-400) > 1e-9 {
		t.Errorf("DeltaTime = %v, want 400", diffObjects[0].DeltaTime)
	}

	if math.Abs(diffObjects[0].StartTime-400) > 1e-9 {
		t.Errorf("StartTime = %v, want 400", diffObjects[0].StartTime)
	}
}

func TestStrainTimeFloor(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	objs := []objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(10, 100, 0),
	}

	diffObjects := CreateDifficultyObjects(objs, diff)

	if diffObjects[0].DeltaTime != 10 {
		t.Errorf("DeltaTime = %v, want raw 10", diffObjects[0].DeltaTime)
	}

	if diffObjects[0].StrainTime != MinDeltaTime {
		t.Errorf("StrainTime = %v, want floored to %v", diffObjects[0].StrainTime, MinDeltaTime)
	}
}

func TestJumpDistanceNormalization(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	objs := []objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(500, 100, 0),
	}

	diffObjects := CreateDifficultyObjects(objs, diff)

	want := 100 * NormalizedRadius / diff.CircleRadiusU
	if math.Abs(diffObjects[0].LazyJumpDistance-want) > 1e-3 {
		t.Errorf("LazyJumpDistance = %v, want %v", diffObjects[0].LazyJumpDistance, want)
	}
}

func TestAngle(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	straight := CreateDifficultyObjects([]objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(500, 100, 0),
		circleAt(1000, 200, 0),
	}, diff)

	if !math.IsNaN(straight[0].Angle) {
		t.Errorf("first object angle = %v, want NaN without two predecessors", straight[0].Angle)
	}

	if math.Abs(straight[1].Angle-math.Pi) > 1e-5 {
		t.Errorf("straight-line angle = %v, want pi", straight[1].Angle)
	}

	rightAngle := CreateDifficultyObjects([]objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(500, 100, 0),
		circleAt(1000, 100, 100),
	}, diff)

	if math.Abs(rightAngle[1].Angle-math.Pi/2) > 1e-5 {
		t.Errorf("right angle = %v, want pi/2", rightAngle[1].Angle)
	}
}

func TestSpinnerSkipsDistances(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	spinner := &objects.Spinner{HitObject: objects.HitObject{
		StartTime: 0,
		EndTime:   400,
		StartPos:  vector.NewVec2f(256, 192),
	}}

	diffObjects := CreateDifficultyObjects([]objects.IHitObject{
		spinner,
		circleAt(500, 100, 0),
	}, diff)

	if diffObjects[0].LazyJumpDistance != 0 {
		t.Errorf("LazyJumpDistance = %v, want 0 after a spinner", diffObjects[0].LazyJumpDistance)
	}
}

func TestPreviousNext(t *testing.T) {
	diff := difficulty.NewDifficulty(5, 4, 8, 9)

	diffObjects := CreateDifficultyObjects([]objects.IHitObject{
		circleAt(0, 0, 0),
		circleAt(500, 100, 0),
		circleAt(1000, 200, 0),
	}, diff)

	if diffObjects[1].Previous(0) != diffObjects[0] {
		t.Error("Previous(0) should return the preceding difficulty object")
	}

	if diffObjects[0].Previous(0) != nil {
		t.Error("Previous(0) of the first object should be nil")
	}

	if diffObjects[0].Next(0) != diffObjects[1] {
		t.Error("Next(0) should return the following difficulty object")
	}

	if diffObjects[1].Next(0) != nil {
		t.Error("Next(0) of the last object should be nil")
	}
}
