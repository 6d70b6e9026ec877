package skills

import (
	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/rulesets/taiko/performance/preprocessing"
	"github.com/mekyu/rate-go/framework/math/mutils"
)

const (
	rhythmSkillMultiplier float64 = 10
	rhythmStrainDecay     float64 = 0.96

	rhythmHistoryMaxLength = 8
)

// Rhythm rates how hard the rhythm changes are to follow. The strain only
// moves on notes that actually change the rhythm; repeated change patterns are
// penalized through a short history.
type Rhythm struct {
	*Skill

	currentStrain float64

	rhythmHistory          []*preprocessing.TaikoDifficultyObject
	notesSinceRhythmChange int
}

func NewRhythmSkill(d *difficulty.Difficulty) *Rhythm {
	skill := &Rhythm{Skill: NewSkill(d)}

	skill.StrainValueOf = skill.rhythmStrainValue
	skill.CalculateInitialStrain = skill.rhythmInitialStrain

	return skill
}

// The strain does not carry over section borders; rhythm pressure only exists
// while rhythm changes keep coming.
func (skill *Rhythm) rhythmInitialStrain(time float64, current *preprocessing.TaikoDifficultyObject) float64 {
	return 0
}

func (skill *Rhythm) rhythmStrainValue(current *preprocessing.TaikoDifficultyObject) float64 {
	// Drum rolls and swells are exempt.
	if !current.IsNote {
		skill.resetRhythmAndStrain()
		return 0
	}

	skill.currentStrain *= rhythmStrainDecay

	skill.notesSinceRhythmChange++

	// Rhythm difficulty zero (due to rhythm not changing) => no rhythm strain.
	if current.Rhythm.Difficulty == 0 {
		return 0
	}

	objectStrain := current.Rhythm.Difficulty

	objectStrain *= skill.repetitionPenalties(current)
	objectStrain *= patternLengthPenalty(skill.notesSinceRhythmChange)
	objectStrain *= skill.speedPenalty(current.DeltaTime)

	// This has to be done here since the penalties above read the counter.
	skill.notesSinceRhythmChange = 0

	skill.currentStrain += objectStrain * rhythmSkillMultiplier

	return skill.currentStrain
}

// repetitionPenalties nerfs rhythm changes that echo a recent change pattern.
func (skill *Rhythm) repetitionPenalties(current *preprocessing.TaikoDifficultyObject) float64 {
	penalty := 1.0

	skill.rhythmHistory = append(skill.rhythmHistory, current)
	if len(skill.rhythmHistory) > rhythmHistoryMaxLength {
		skill.rhythmHistory = skill.rhythmHistory[1:]
	}

	for recentPatterns := 2; recentPatterns <= rhythmHistoryMaxLength/2; recentPatterns++ {
		for start := len(skill.rhythmHistory) - recentPatterns - 1; start >= 0; start-- {
			if !skill.samePattern(start, recentPatterns) {
				continue
			}

			notesSince := current.Index - skill.rhythmHistory[start].Index
			penalty *= repetitionPenalty(notesSince)

			break
		}
	}

	return penalty
}

// samePattern compares the tail of the history against the run starting at
// start; rhythm entries are shared, so identity comparison suffices.
func (skill *Rhythm) samePattern(start, count int) bool {
	for i := 0; i < count; i++ {
		if skill.rhythmHistory[start+i].Rhythm != skill.rhythmHistory[len(skill.rhythmHistory)-count+i].Rhythm {
			return false
		}
	}

	return true
}

func repetitionPenalty(notesSince int) float64 {
	return min(1.0, 0.032*float64(notesSince))
}

// patternLengthPenalty nerfs both very short and very long runs between
// rhythm changes.
func patternLengthPenalty(patternLength int) float64 {
	shortPatternPenalty := min(0.15*float64(patternLength), 1.0)
	longPatternPenalty := mutils.Clamp(2.5-0.15*float64(patternLength), 0.0, 1.0)

	return min(shortPatternPenalty, longPatternPenalty)
}

// speedPenalty nerfs slow rhythm changes; below stream speed the strain is
// reset entirely.
func (skill *Rhythm) speedPenalty(deltaTime float64) float64 {
	if deltaTime < 80 {
		return 1
	}

	if deltaTime < 210 {
		return max(0, 1.4-0.005*deltaTime)
	}

	skill.resetRhythmAndStrain()

	return 0
}

func (skill *Rhythm) resetRhythmAndStrain() {
	skill.currentStrain = 0
	skill.notesSinceRhythmChange = 0
}
