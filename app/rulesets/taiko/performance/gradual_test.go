package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/api"
)

func TestGradualDifficultyConvergesToSingle(t *testing.T) {
	objs := drumChart(200)
	diff := drumDiff(difficulty.None)

	gradual := NewGradualDifficulty(objs, diff)

	var last api.TaikoAttributes

	steps := 0
	for {
		attr, ok := gradual.Next()
		if !ok {
			break
		}

		last = attr
		steps++
	}

	assert.Equal(t, len(objs), steps)
	assert.Zero(t, gradual.Remaining())

	single := NewDifficultyCalculator().CalculateSingle(objs, diff)
	assert.Equal(t, single, last)
}

func TestGradualDifficultyAdvanceToEnd(t *testing.T) {
	objs := drumChart(200)
	diff := drumDiff(difficulty.None)

	final := NewGradualDifficulty(objs, diff).AdvanceToEnd()
	single := NewDifficultyCalculator().CalculateSingle(objs, diff)

	assert.Equal(t, single, final)
}

func TestGradualDifficultyAdvanceTo(t *testing.T) {
	objs := drumChart(200)
	diff := drumDiff(difficulty.None)

	gradual := NewGradualDifficulty(objs, diff)

	attr, ok := gradual.AdvanceTo(49)
	require.True(t, ok)
	assert.Equal(t, 50, attr.ObjectCount)

	_, ok = gradual.AdvanceTo(10)
	assert.False(t, ok)
}

func TestGradualDifficultyEmptyChart(t *testing.T) {
	diff := drumDiff(difficulty.DoubleTime)

	final := NewGradualDifficulty(nil, diff).AdvanceToEnd()
	single := NewDifficultyCalculator().CalculateSingle(nil, diff)

	assert.Equal(t, single, final)
	assert.Zero(t, final.Total)
}

func TestGradualPerformanceAdvanceTo(t *testing.T) {
	objs := drumChart(200)
	diff := drumDiff(difficulty.None)

	state := api.ScoreState{CountGreat: 80, MaxCombo: 80}

	stepped := NewGradualPerformance(objs, diff)

	var want api.TaikoPPResults
	for i := 0; i < 80; i++ {
		results, ok := stepped.Next(state)
		require.True(t, ok)

		want = results
	}

	skipped := NewGradualPerformance(objs, diff)

	got, ok := skipped.AdvanceTo(state, 79)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Going backwards is refused.
	_, ok = skipped.AdvanceTo(state, 10)
	assert.False(t, ok)
}

func TestGradualPerformanceConvergesToCalculate(t *testing.T) {
	objs := drumChart(200)
	diff := drumDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)
	state := api.PerfectState(attr.MaxCombo, attr.MaxCombo)

	gradualResults, ok := NewGradualPerformance(objs, diff).ProcessAll(state)
	require.True(t, ok)

	direct, err := NewPPCalculator().Calculate(attr, state, diff)
	require.NoError(t, err)

	assert.InDelta(t, direct.Total, gradualResults.Total, 1e-9)
	assert.InDelta(t, direct.Difficulty, gradualResults.Difficulty, 1e-9)
	assert.InDelta(t, direct.Acc, gradualResults.Acc, 1e-9)
}

func TestGradualPerformanceStepwise(t *testing.T) {
	objs := drumChart(60)
	diff := drumDiff(difficulty.None)

	gradual := NewGradualPerformance(objs, diff)

	state := api.ScoreState{}

	steps := 0
	for gradual.Remaining() > 0 {
		state.CountGreat++
		state.MaxCombo++

		results, ok := gradual.Next(state)
		require.True(t, ok)
		assert.GreaterOrEqual(t, results.Total, 0.0)

		steps++
	}

	assert.Equal(t, len(objs), steps)

	_, ok := gradual.Next(state)
	assert.False(t, ok)
}

func TestSynchronizedGradualMatches(t *testing.T) {
	objs := drumChart(200)
	diff := drumDiff(difficulty.None)

	attr := NewDifficultyCalculator().CalculateSingle(objs, diff)
	state := api.PerfectState(attr.MaxCombo, attr.MaxCombo)

	plain, ok := NewGradualPerformance(objs, diff).ProcessAll(state)
	require.True(t, ok)

	synced, ok := NewSynchronizedGradualPerformance(objs, diff).ProcessAll(state)
	require.True(t, ok)

	assert.Equal(t, plain, synced)

	syncedAttr := NewSynchronizedGradualDifficulty(objs, diff).AdvanceToEnd()
	assert.Equal(t, NewGradualDifficulty(objs, diff).AdvanceToEnd(), syncedAttr)
}
