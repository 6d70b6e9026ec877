package performance

import (
	"math"

	"github.com/mekyu/rate-go/app/rulesets/api"
	"github.com/mekyu/rate-go/framework/math/mutils"
)

// GenerateScoreState builds a plausible score state for a play of the given
// accuracy and miss count. Pass a negative accuracy to generate from the miss
// count alone; priority then decides whether the remaining hits are greats or
// oks. Each great is worth twice an ok, so the generated state reproduces the
// requested accuracy as closely as the judgement grid allows.
func GenerateScoreState(attribs api.TaikoAttributes, acc float64, misses int, priority api.HitResultPriority) api.ScoreState {
	total := attribs.MaxCombo
	misses = mutils.Clamp(misses, 0, total)
	remaining := total - misses

	var countGreat, countOk int

	if acc >= 0 {
		targetTotal := int(math.Round(mutils.Clamp(acc, 0, 1) * float64(total*2)))
		countGreat = mutils.Clamp(targetTotal-remaining, 0, remaining)
		countOk = remaining - countGreat
	} else if priority == api.BestCase {
		countGreat = remaining
	} else {
		countOk = remaining
	}

	return api.ScoreState{
		MaxCombo:   total,
		CountGreat: countGreat,
		CountOk:    countOk,
		CountMiss:  misses,
	}
}
