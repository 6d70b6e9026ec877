package api

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	cases := []struct {
		name  string
		state ScoreState
		want  float64
	}{
		{"empty", ScoreState{}, 1},
		{"perfect", ScoreState{CountGreat: 100}, 1},
		{"mixed", ScoreState{CountGreat: 97, CountOk: 2, CountMeh: 1}, (97*300.0 + 2*100 + 50) / (100 * 300.0)},
		{"all misses", ScoreState{CountMiss: 10}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.Accuracy(); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Accuracy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTaikoAccuracyIgnoresMeh(t *testing.T) {
	state := ScoreState{CountGreat: 90, CountOk: 10, CountMeh: 50}

	want := (90*300.0 + 10*150) / (100 * 300.0)
	if got := state.TaikoAccuracy(); math.Abs(got-want) > 1e-12 {
		t.Errorf("TaikoAccuracy() = %v, want %v", got, want)
	}
}

func TestClampNegativeCounts(t *testing.T) {
	state := ScoreState{MaxCombo: -5, CountGreat: -1, CountOk: 3}.Clamp(100)

	if state.MaxCombo != 0 || state.CountGreat != 0 || state.CountOk != 3 {
		t.Errorf("Clamp() = %+v, want negatives zeroed", state)
	}
}

func TestClampOverflowDropsLeastValuableFirst(t *testing.T) {
	state := ScoreState{CountGreat: 90, CountOk: 10, CountMeh: 10, CountMiss: 10}.Clamp(100)

	if state.TotalHits() != 100 {
		t.Fatalf("TotalHits() = %d, want 100", state.TotalHits())
	}

	// 20 hits of overflow eat all mehs, then all oks, leaving misses intact.
	if state.CountMeh != 0 || state.CountOk != 0 || state.CountMiss != 10 || state.CountGreat != 90 {
		t.Errorf("Clamp() = %+v, want overflow dropped meh-first", state)
	}
}

func TestClampAllGreatsOverflow(t *testing.T) {
	state := ScoreState{CountGreat: 150}.Clamp(100)

	if state.CountGreat != 100 {
		t.Errorf("CountGreat = %d, want 100", state.CountGreat)
	}
}

func TestPerfectState(t *testing.T) {
	state := PerfectState(100, 130)

	if state.CountGreat != 100 || state.MaxCombo != 130 || state.Accuracy() != 1 {
		t.Errorf("PerfectState() = %+v", state)
	}
}

func TestScoreStateString(t *testing.T) {
	state := ScoreState{MaxCombo: 250, CountGreat: 95, CountOk: 3, CountMeh: 1, CountMiss: 1}

	if got := state.String(); got != "250x [95/3/1/1]" {
		t.Errorf("String() = %q", got)
	}
}
