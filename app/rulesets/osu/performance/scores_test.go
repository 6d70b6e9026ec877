package performance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mekyu/rate-go/app/rulesets/api"
)

func TestGenerateScoreStateFromAccuracy(t *testing.T) {
	attribs := api.Attributes{ObjectCount: 100, MaxCombo: 130}

	state := GenerateScoreState(attribs, 0.99, 0, api.BestCase)

	assert.Equal(t, 98, state.CountGreat)
	assert.Equal(t, 2, state.CountOk)
	assert.Zero(t, state.CountMeh)
	assert.Zero(t, state.CountMiss)
	assert.Equal(t, 130, state.MaxCombo)
	assert.Equal(t, 100, state.TotalHits())

	// The generated state reproduces the requested accuracy closely.
	assert.InDelta(t, 0.99, state.Accuracy(), 0.01)
}

func TestGenerateScoreStateWithMisses(t *testing.T) {
	attribs := api.Attributes{ObjectCount: 100, MaxCombo: 130}

	state := GenerateScoreState(attribs, 0.95, 2, api.BestCase)

	assert.Equal(t, 2, state.CountMiss)
	assert.Equal(t, 100, state.TotalHits())

	// Misses break the combo into chunks; the estimate takes the biggest one.
	assert.Equal(t, 130/3, state.MaxCombo)

	assert.InDelta(t, 0.95, state.Accuracy(), 0.01)
}

func TestGenerateScoreStatePerfect(t *testing.T) {
	attribs := api.Attributes{ObjectCount: 100, MaxCombo: 130}

	state := GenerateScoreState(attribs, 1, 0, api.BestCase)

	assert.Equal(t, api.PerfectState(100, 130), state)
	assert.Equal(t, 1.0, state.Accuracy())
}

func TestGenerateScoreStatePriority(t *testing.T) {
	attribs := api.Attributes{ObjectCount: 100, MaxCombo: 130}

	best := GenerateScoreState(attribs, -1, 5, api.BestCase)
	assert.Equal(t, 95, best.CountGreat)
	assert.Zero(t, best.CountMeh)

	worst := GenerateScoreState(attribs, -1, 5, api.WorstCase)
	assert.Equal(t, 95, worst.CountMeh)
	assert.Zero(t, worst.CountGreat)

	assert.Greater(t, best.Accuracy(), worst.Accuracy())
}

func TestGenerateScoreStateClampsMisses(t *testing.T) {
	attribs := api.Attributes{ObjectCount: 10, MaxCombo: 10}

	state := GenerateScoreState(attribs, 0.5, 50, api.BestCase)

	assert.Equal(t, 10, state.CountMiss)
	assert.Zero(t, state.CountGreat)
	assert.Zero(t, state.MaxCombo)
	assert.Equal(t, 10, state.TotalHits())
}

func TestGenerateScoreStateAccuracyRoundTrip(t *testing.T) {
	attribs := api.Attributes{ObjectCount: 1000, MaxCombo: 1300}

	for _, acc := range []float64{1, 0.995, 0.97, 0.9, 0.8} {
		state := GenerateScoreState(attribs, acc, 0, api.BestCase)

		// The great/ok split gets within one judgement unit of the target.
		if math.Abs(state.Accuracy()-acc) > 1.0/1000 {
			t.Errorf("acc %v reproduced as %v", acc, state.Accuracy())
		}
	}
}
