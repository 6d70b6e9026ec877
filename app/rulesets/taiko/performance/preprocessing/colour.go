package preprocessing

// Colour pattern encoding. Notes are grouped three levels deep: runs of one
// colour (MonoStreak), runs of streaks sharing a length (AlternatingMonoPattern)
// and runs of patterns repeating each other (RepeatingHitPatterns). The colour
// skill rates the first note of each group.

const maxRepetitionInterval = 16

// MonoStreak is an uninterrupted run of notes of the same colour.
type MonoStreak struct {
	Parent *AlternatingMonoPattern
	Index  int

	HitObjects []*TaikoDifficultyObject
}

func (m *MonoStreak) FirstHitObject() *TaikoDifficultyObject {
	return m.HitObjects[0]
}

func (m *MonoStreak) HitType() HitType {
	return m.HitObjects[0].HitType
}

func (m *MonoStreak) RunLength() int {
	return len(m.HitObjects)
}

// AlternatingMonoPattern is a run of mono streaks of equal length.
type AlternatingMonoPattern struct {
	Parent *RepeatingHitPatterns
	Index  int

	MonoStreaks []*MonoStreak
}

func (a *AlternatingMonoPattern) FirstHitObject() *TaikoDifficultyObject {
	return a.MonoStreaks[0].FirstHitObject()
}

func (a *AlternatingMonoPattern) HasIdenticalMonoLength(other *AlternatingMonoPattern) bool {
	return other.MonoStreaks[0].RunLength() == a.MonoStreaks[0].RunLength()
}

// IsRepetitionOf is true if the other pattern has the same mono length, streak
// count and starting colour.
func (a *AlternatingMonoPattern) IsRepetitionOf(other *AlternatingMonoPattern) bool {
	return a.HasIdenticalMonoLength(other) &&
		len(other.MonoStreaks) == len(a.MonoStreaks) &&
		other.MonoStreaks[0].HitType() == a.MonoStreaks[0].HitType()
}

// RepeatingHitPatterns is a run of alternating mono patterns repeating each
// other, plus how far back an identical run last appeared.
type RepeatingHitPatterns struct {
	Previous *RepeatingHitPatterns

	AlternatingMonoPatterns []*AlternatingMonoPattern

	// RepetitionInterval is the number of groups since the last identical one,
	// capped at maxRepetitionInterval+1.
	RepetitionInterval int
}

func (r *RepeatingHitPatterns) FirstHitObject() *TaikoDifficultyObject {
	return r.AlternatingMonoPatterns[0].FirstHitObject()
}

func (r *RepeatingHitPatterns) isRepetitionOf(other *RepeatingHitPatterns) bool {
	if len(r.AlternatingMonoPatterns) != len(other.AlternatingMonoPatterns) {
		return false
	}

	for i := 0; i < min(len(r.AlternatingMonoPatterns), 2); i++ {
		if !r.AlternatingMonoPatterns[i].HasIdenticalMonoLength(other.AlternatingMonoPatterns[i]) {
			return false
		}
	}

	return true
}

// FindRepetitionInterval fills RepetitionInterval by walking back through the
// previous groups.
func (r *RepeatingHitPatterns) FindRepetitionInterval() {
	if r.Previous == nil {
		r.RepetitionInterval = maxRepetitionInterval + 1
		return
	}

	other := r.Previous
	interval := 1

	for interval < maxRepetitionInterval {
		if r.isRepetitionOf(other) {
			r.RepetitionInterval = min(interval, maxRepetitionInterval)
			return
		}

		other = other.Previous
		if other == nil {
			break
		}

		interval++
	}

	r.RepetitionInterval = maxRepetitionInterval + 1
}

// ProcessColours runs the three-level encoding over the object sequence and
// assigns each note the groups it opens.
func ProcessColours(diffObjects []*TaikoDifficultyObject) {
	monoStreaks := encodeMonoStreaks(diffObjects)
	patterns := encodeAlternatingMonoPatterns(monoStreaks)
	repeating := encodeRepeatingHitPatterns(patterns)

	for _, group := range repeating {
		group.FindRepetitionInterval()
	}
}

func encodeMonoStreaks(diffObjects []*TaikoDifficultyObject) []*MonoStreak {
	monoStreaks := make([]*MonoStreak, 0)

	var current *MonoStreak

	for _, obj := range diffObjects {
		if !obj.IsNote {
			continue
		}

		previousNote := obj.PreviousNote(0)

		if current == nil || previousNote == nil || obj.HitType != previousNote.HitType {
			current = &MonoStreak{}
			monoStreaks = append(monoStreaks, current)
			obj.Colour.MonoStreak = current
		}

		current.HitObjects = append(current.HitObjects, obj)
	}

	return monoStreaks
}

func encodeAlternatingMonoPatterns(monoStreaks []*MonoStreak) []*AlternatingMonoPattern {
	patterns := make([]*AlternatingMonoPattern, 0)

	var current *AlternatingMonoPattern

	for i, streak := range monoStreaks {
		if current == nil || streak.RunLength() != monoStreaks[i-1].RunLength() {
			current = &AlternatingMonoPattern{}
			patterns = append(patterns, current)
			streak.FirstHitObject().Colour.AlternatingPattern = current
		}

		streak.Parent = current
		streak.Index = len(current.MonoStreaks)
		current.MonoStreaks = append(current.MonoStreaks, streak)
	}

	return patterns
}

func encodeRepeatingHitPatterns(patterns []*AlternatingMonoPattern) []*RepeatingHitPatterns {
	repeating := make([]*RepeatingHitPatterns, 0)

	var current *RepeatingHitPatterns

	for i, pattern := range patterns {
		if current == nil || !pattern.IsRepetitionOf(patterns[i-1]) {
			current = &RepeatingHitPatterns{Previous: current}
			repeating = append(repeating, current)
			pattern.FirstHitObject().Colour.RepeatingHitPattern = current
		}

		pattern.Parent = current
		pattern.Index = len(current.AlternatingMonoPatterns)
		current.AlternatingMonoPatterns = append(current.AlternatingMonoPatterns, pattern)
	}

	return repeating
}
