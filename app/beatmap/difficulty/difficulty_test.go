package difficulty

import (
	"math"
	"testing"
)

func TestHitWindows(t *testing.T) {
	diff := NewDifficulty(5, 4, 8, 9)

	// OD8: 80 - 6*8 = 32ms great window.
	if math.Abs(diff.Hit300U-32) > 1e-9 {
		t.Errorf("Hit300U = %v, want 32", diff.Hit300U)
	}

	if math.Abs(diff.ODReal-8) > 1e-9 {
		t.Errorf("ODReal = %v, want 8", diff.ODReal)
	}
}

func TestDoubleTimeShrinksWindows(t *testing.T) {
	diff := NewDifficulty(5, 4, 8, 9)
	diff.SetMods(DoubleTime)

	if diff.Speed != 1.5 {
		t.Fatalf("Speed = %v, want 1.5", diff.Speed)
	}

	// The authored window is unchanged, the played one shrinks.
	if math.Abs(diff.Hit300U-32) > 1e-9 {
		t.Errorf("Hit300U = %v, want 32", diff.Hit300U)
	}

	if math.Abs(diff.Hit300-32/1.5) > 1e-9 {
		t.Errorf("Hit300 = %v, want %v", diff.Hit300, 32/1.5)
	}

	// OD8 + DT plays like ~9.87.
	if diff.ODReal <= 8 {
		t.Errorf("ODReal = %v, want > 8", diff.ODReal)
	}
}

func TestHardRockScalesSettings(t *testing.T) {
	diff := NewDifficulty(5, 4, 5, 5)
	diff.SetMods(HardRock)

	// AR 5 * 1.4 = 7 -> preempt 1200 - 150*2 = 900ms.
	if math.Abs(diff.PreemptU-900) > 1e-9 {
		t.Errorf("PreemptU = %v, want 900", diff.PreemptU)
	}

	// CS 4 * 1.3 = 5.2.
	wantRadius := 32 * (1 - 0.7*(5.2-5)/5)
	if math.Abs(diff.CircleRadiusU-wantRadius) > 1e-9 {
		t.Errorf("CircleRadiusU = %v, want %v", diff.CircleRadiusU, wantRadius)
	}
}

func TestHiddenFadeIn(t *testing.T) {
	diff := NewDifficulty(5, 4, 8, 9)
	noHidden := diff.TimeFadeIn

	diff.SetMods(Hidden)

	if math.Abs(diff.TimeFadeIn-diff.PreemptU*0.4) > 1e-9 {
		t.Errorf("TimeFadeIn = %v, want %v", diff.TimeFadeIn, diff.PreemptU*0.4)
	}

	if diff.TimeFadeIn == noHidden {
		t.Error("hidden should change the fade-in window")
	}
}

func TestSetModsIdempotent(t *testing.T) {
	diff := NewDifficulty(5, 4, 8, 9)

	diff.SetMods(Hidden | DoubleTime)
	first := *diff

	diff.SetMods(Hidden | DoubleTime)

	if *diff != first {
		t.Error("resolving the same modifier set twice changed the result")
	}
}

func TestCustomSpeedOverridesMods(t *testing.T) {
	diff := NewDifficulty(5, 4, 8, 9)
	diff.SetMods(DoubleTime)
	diff.SetCustomSpeed(1.25)

	if diff.Speed != 1.25 {
		t.Errorf("Speed = %v, want 1.25", diff.Speed)
	}

	diff.SetCustomSpeed(0)

	if diff.Speed != 1.5 {
		t.Errorf("Speed = %v, want mod-derived 1.5 after reset", diff.Speed)
	}
}

func TestAdjustedODClamped(t *testing.T) {
	diff := NewDifficulty(5, 4, 9, 9)
	diff.SetMods(HardRock)

	if diff.AdjustedOD() != 10 {
		t.Errorf("AdjustedOD() = %v, want clamp at 10", diff.AdjustedOD())
	}
}
