package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mekyu/rate-go/app/rulesets/api"
)

func TestGenerateScoreStateFromAccuracy(t *testing.T) {
	attribs := api.TaikoAttributes{MaxCombo: 289, ObjectCount: 289}

	state := GenerateScoreState(attribs, 0.972, 2, api.BestCase)

	assert.Equal(t, 275, state.CountGreat)
	assert.Equal(t, 12, state.CountOk)
	assert.Equal(t, 2, state.CountMiss)
	assert.Equal(t, 289, state.CountGreat+state.CountOk+state.CountMiss)

	assert.InDelta(t, 0.972, state.TaikoAccuracy(), 0.005)
}

func TestGenerateScoreStatePerfect(t *testing.T) {
	attribs := api.TaikoAttributes{MaxCombo: 100}

	state := GenerateScoreState(attribs, 1, 0, api.BestCase)

	assert.Equal(t, 100, state.CountGreat)
	assert.Zero(t, state.CountOk)
	assert.Equal(t, 1.0, state.TaikoAccuracy())
}

func TestGenerateScoreStatePriority(t *testing.T) {
	attribs := api.TaikoAttributes{MaxCombo: 100}

	best := GenerateScoreState(attribs, -1, 5, api.BestCase)
	assert.Equal(t, 95, best.CountGreat)
	assert.Zero(t, best.CountOk)

	worst := GenerateScoreState(attribs, -1, 5, api.WorstCase)
	assert.Equal(t, 95, worst.CountOk)
	assert.Zero(t, worst.CountGreat)

	assert.Greater(t, best.TaikoAccuracy(), worst.TaikoAccuracy())
}

func TestGenerateScoreStateHalfAccuracy(t *testing.T) {
	attribs := api.TaikoAttributes{MaxCombo: 100}

	// 50% is exactly the all-ok floor of a no-miss play.
	state := GenerateScoreState(attribs, 0.5, 0, api.BestCase)

	assert.Zero(t, state.CountGreat)
	assert.Equal(t, 100, state.CountOk)
	assert.Equal(t, 0.5, state.TaikoAccuracy())
}

func TestGenerateScoreStateClampsMisses(t *testing.T) {
	attribs := api.TaikoAttributes{MaxCombo: 10}

	state := GenerateScoreState(attribs, 0.9, 100, api.BestCase)

	assert.Equal(t, 10, state.CountMiss)
	assert.Zero(t, state.CountGreat)
	assert.Zero(t, state.CountOk)
}
