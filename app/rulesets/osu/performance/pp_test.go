package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/app/rulesets/api"
)

func TestCalculateMismatchedModifiers(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	hidden := testDiff(difficulty.Hidden)

	_, err := NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), hidden)
	require.ErrorIs(t, err, api.ErrMismatchedModifiers)

	// A different clock rate is a mismatch too, even with identical mods.
	rateChanged := testDiff(difficulty.None)
	rateChanged.SetCustomSpeed(1.1)

	_, err = NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), rateChanged)
	require.ErrorIs(t, err, api.ErrMismatchedModifiers)
}

func TestCalculatePerfectPlay(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	results, err := NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), diff)
	require.NoError(t, err)

	assert.Greater(t, results.Total, 0.0)
	assert.Greater(t, results.Aim, 0.0)
	assert.Greater(t, results.Speed, 0.0)
	assert.Greater(t, results.Acc, 0.0)
	assert.Zero(t, results.Flashlight)
	assert.Zero(t, results.EffectiveMissCount)
	assert.Equal(t, attr, results.Difficulty)
}

func TestCalculateAccuracyMonotonic(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	full, err := NewPPCalculator().Calculate(attr, api.ScoreState{MaxCombo: attr.MaxCombo, CountGreat: 100}, diff)
	require.NoError(t, err)

	lower, err := NewPPCalculator().Calculate(attr, api.ScoreState{MaxCombo: attr.MaxCombo, CountGreat: 90, CountOk: 10}, diff)
	require.NoError(t, err)

	assert.Greater(t, full.Total, lower.Total)
	assert.Greater(t, full.Acc, lower.Acc)
}

func TestCalculateMissesReducePerformance(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	clean, err := NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), diff)
	require.NoError(t, err)

	missState := api.ScoreState{MaxCombo: attr.MaxCombo / 2, CountGreat: 95, CountMiss: 5}

	missed, err := NewPPCalculator().Calculate(attr, missState, diff)
	require.NoError(t, err)

	assert.Less(t, missed.Total, clean.Total)
	assert.GreaterOrEqual(t, missed.EffectiveMissCount, 5.0)
}

func TestCalculateHiddenBonus(t *testing.T) {
	objs := testChart(100)

	normalDiff := testDiff(difficulty.None)
	normalAttr := NewDifficultyCalculator().CalculateSingle(objs, normalDiff)

	hiddenDiff := testDiff(difficulty.Hidden)
	hiddenAttr := NewDifficultyCalculator().CalculateSingle(objs, hiddenDiff)

	normal, err := NewPPCalculator().Calculate(normalAttr, api.PerfectState(normalAttr.ObjectCount, normalAttr.MaxCombo), normalDiff)
	require.NoError(t, err)

	hidden, err := NewPPCalculator().Calculate(hiddenAttr, api.PerfectState(hiddenAttr.ObjectCount, hiddenAttr.MaxCombo), hiddenDiff)
	require.NoError(t, err)

	assert.Greater(t, hidden.Total, normal.Total)
}

func TestCalculateNoFailPenalty(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	missState := api.ScoreState{MaxCombo: attr.MaxCombo / 2, CountGreat: 95, CountMiss: 5}

	without, err := NewPPCalculator().Calculate(attr, missState, diff)
	require.NoError(t, err)

	// NoFail is not part of the masked set, so the same attributes stay valid.
	nfDiff := testDiff(difficulty.NoFail)

	with, err := NewPPCalculator().Calculate(attr, missState, nfDiff)
	require.NoError(t, err)

	assert.Less(t, with.Total, without.Total)
}

func TestCalculateFlashlight(t *testing.T) {
	objs := testChart(100)

	diff := testDiff(difficulty.Flashlight)
	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	results, err := NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), diff)
	require.NoError(t, err)

	assert.Greater(t, results.Flashlight, 0.0)
}

func TestCalculatePerformanceConvenience(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.Hidden)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)
	state := api.PerfectState(attr.ObjectCount, attr.MaxCombo)

	direct, err := CalculatePerformance(objs, diff, state)
	require.NoError(t, err)

	twoStep, err := NewPPCalculator().Calculate(attr, state, diff)
	require.NoError(t, err)

	assert.Equal(t, twoStep, direct)
}

func TestCalculateHarderChartCostsMore(t *testing.T) {
	// Same pattern at a quarter of the pace, so every skill rating is lower.
	sparse := make([]objects.IHitObject, 0, 100)
	for i := 0; i < 100; i++ {
		sparse = append(sparse, testCircle(float64(i)*600, float32(64+(i%2)*384), float32(64+(i%3)*128)))
	}

	dense := testChart(100)
	diff := testDiff(difficulty.None)

	denseAttr := NewDifficultyCalculator().CalculateSingle(dense, diff)
	sparseAttr := NewDifficultyCalculator().CalculateSingle(sparse, diff)

	require.Greater(t, denseAttr.Total, sparseAttr.Total)

	calcLoss := func(attr api.Attributes) float64 {
		perfect, err := NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), diff)
		require.NoError(t, err)

		degraded, err := NewPPCalculator().Calculate(attr, GenerateScoreState(attr, 0.95, 2, api.BestCase), diff)
		require.NoError(t, err)

		return perfect.Total - degraded.Total
	}

	// The same imperfect profile costs more raw performance on the chart with
	// uniformly higher skill ratings.
	assert.Greater(t, calcLoss(denseAttr), calcLoss(sparseAttr))
}

func TestCalculateClampsAbsurdState(t *testing.T) {
	objs := testChart(100)
	diff := testDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)

	// A state claiming more hits than the chart has objects must not blow up
	// or rate higher than the perfect play.
	absurd := api.ScoreState{MaxCombo: 1 << 30, CountGreat: 1 << 20}

	results, err := NewPPCalculator().Calculate(attr, absurd, diff)
	require.NoError(t, err)

	perfect, err := NewPPCalculator().Calculate(attr, api.PerfectState(attr.ObjectCount, attr.MaxCombo), diff)
	require.NoError(t, err)

	assert.InDelta(t, perfect.Total, results.Total, 1e-9)
}
