package performance

import (
	"math"

	"github.com/mekyu/rate-go/app/rulesets/api"
	"github.com/mekyu/rate-go/framework/math/mutils"
)

// GenerateScoreState builds a plausible score state for a play of the given
// accuracy and miss count. Pass a negative accuracy to generate from the miss
// count alone; priority then decides whether the remaining hits are greats or
// mehs. Generated states never contain mehs when an accuracy is given, they
// are the rarest judgement in practice and the great/ok split already covers
// the reachable accuracy range.
func GenerateScoreState(attribs api.Attributes, acc float64, misses int, priority api.HitResultPriority) api.ScoreState {
	total := attribs.ObjectCount
	misses = mutils.Clamp(misses, 0, total)
	remaining := total - misses

	var countGreat, countOk, countMeh int

	if acc >= 0 {
		// Judgements weigh 6/2/1; with mehs pinned to zero the great count follows
		// from the target unit sum.
		targetUnits := int(math.Round(mutils.Clamp(acc, 0, 1) * float64(total*6)))
		countGreat = mutils.Clamp((targetUnits-2*remaining)/4, 0, remaining)
		countOk = remaining - countGreat
	} else if priority == api.BestCase {
		countGreat = remaining
	} else {
		countMeh = remaining
	}

	comboEstimate := attribs.MaxCombo
	if misses > 0 {
		comboEstimate = attribs.MaxCombo / (misses + 1)
	}

	return api.ScoreState{
		MaxCombo:   comboEstimate,
		CountGreat: countGreat,
		CountOk:    countOk,
		CountMeh:   countMeh,
		CountMiss:  misses,
	}
}
