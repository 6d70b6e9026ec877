package evaluators

import (
	"math"

	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
)

// EvaluateColour rates the colour pattern pressure of a note. Only the first
// note of each pattern group scores; everything inside a group has already
// been "paid for" by its opener.
func EvaluateColour(current *preprocessing.TaikoDifficultyObject) float64 {
	difficulty := 0.0

	if streak := current.Colour.MonoStreak; streak != nil && streak.FirstHitObject() == current {
		difficulty += evaluateMonoStreak(streak)
	}

	if pattern := current.Colour.AlternatingPattern; pattern != nil && pattern.FirstHitObject() == current {
		difficulty += evaluateAlternatingPattern(pattern)
	}

	if repeating := current.Colour.RepeatingHitPattern; repeating != nil && repeating.FirstHitObject() == current {
		difficulty += evaluateRepeatingPatterns(repeating)
	}

	return difficulty
}

func evaluateMonoStreak(monoStreak *preprocessing.MonoStreak) float64 {
	return sigmoid(float64(monoStreak.Index), 2, 2, 0.5, 1) * evaluateAlternatingPattern(monoStreak.Parent) * 0.5
}

func evaluateAlternatingPattern(pattern *preprocessing.AlternatingMonoPattern) float64 {
	return sigmoid(float64(pattern.Index), 2, 2, 0.5, 1) * evaluateRepeatingPatterns(pattern.Parent)
}

func evaluateRepeatingPatterns(repeating *preprocessing.RepeatingHitPatterns) float64 {
	return 2 * (1 - sigmoid(float64(repeating.RepetitionInterval), 2, 2, 0.5, 1))
}

// sigmoid is centered at center with the given width, scaled into
// [middle-height/2, middle+height/2].
func sigmoid(val, center, width, middle, height float64) float64 {
	sigmoid := math.Tanh(math.E * -(val - center) / width)
	return sigmoid*(height/2) + middle
}
