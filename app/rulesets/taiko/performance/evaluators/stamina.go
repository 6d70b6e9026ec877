package evaluators

import (
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
)

// EvaluateStamina rates the physical tapping pressure of a note from the
// interval to the previous note played by the same hand, assuming alternating
// two-hand play on each colour.
func EvaluateStamina(current *preprocessing.TaikoDifficultyObject) float64 {
	if !current.IsNote {
		return 0
	}

	// Find the previous hit object hit by the current key, i.e. two notes of the same colour apart.
	keyPrevious := current.PreviousMono(1)

	if keyPrevious == nil {
		// There is no previous hit object hit by the current key
		return 0
	}

	objectStrain := 0.5 // Add a base strain to all objects
	objectStrain += speedBonus(current.StartTime - keyPrevious.StartTime)

	return objectStrain
}

// speedBonus grows as the same-hand interval shrinks.
func speedBonus(interval float64) float64 {
	interval = max(interval, 1)

	return 30 / interval
}
