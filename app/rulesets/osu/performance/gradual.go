package performance

import (
	"sync"

	"github.com/mekyu/rate-go/app/beatmap/difficulty"
	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/app/rulesets/api"
	"github.com/mekyu/rate-go/app/rulesets/osu/performance/preprocessing"
)

// GradualDifficulty yields difficulty attributes after every hitobject,
// reusing the skill state between steps so a full pass over a map costs the
// same as CalculateSingle.
type GradualDifficulty struct {
	calc *DifficultyCalculator
	diff *difficulty.Difficulty

	objs        []objects.IHitObject
	diffObjects []*preprocessing.DifficultyObject

	proc *SkillsProcessor
	attr api.Attributes

	index int
}

func NewGradualDifficulty(objs []objects.IHitObject, diff *difficulty.Difficulty) *GradualDifficulty {
	return &GradualDifficulty{
		calc:        NewDifficultyCalculator(),
		diff:        diff,
		objs:        objs,
		diffObjects: preprocessing.CreateDifficultyObjects(objs, diff),
		proc:        NewSkillsProcessor(diff, true),
		attr: api.Attributes{
			ClockRate:  diff.Speed,
			MaskedMods: difficulty.GetDiffMaskedMods(diff.Mods),
		},
	}
}

// Remaining is how many objects have not been consumed yet.
func (g *GradualDifficulty) Remaining() int {
	return len(g.objs) - g.index
}

// Next consumes one hitobject and returns the attributes of the map prefix
// that ends with it. ok is false once every object has been consumed.
func (g *GradualDifficulty) Next() (attr api.Attributes, ok bool) {
	if g.index >= len(g.objs) {
		return g.attr, false
	}

	g.calc.addObjectToAttribs(g.objs[g.index], &g.attr)

	// The first object generates no difficulty object, so there is nothing to process for it.
	if g.index > 0 {
		g.proc.Process(g.diffObjects[g.index-1])
	}

	g.index++

	return g.calc.getStars(g.proc, g.diff, g.attr), true
}

// AdvanceTo consumes objects up to and including the given index, skipping the
// attribute conversion for all but the last one.
func (g *GradualDifficulty) AdvanceTo(index int) (attr api.Attributes, ok bool) {
	if index < g.index {
		return g.attr, false
	}

	for g.index < index && g.index < len(g.objs) {
		g.calc.addObjectToAttribs(g.objs[g.index], &g.attr)

		if g.index > 0 {
			g.proc.Process(g.diffObjects[g.index-1])
		}

		g.index++
	}

	return g.Next()
}

// AdvanceToEnd consumes every remaining object and returns the final attributes.
func (g *GradualDifficulty) AdvanceToEnd() api.Attributes {
	if len(g.objs) == 0 {
		return g.attr
	}

	attr, ok := g.AdvanceTo(len(g.objs) - 1)
	if !ok {
		attr = g.calc.getStars(g.proc, g.diff, g.attr)
	}

	return attr
}

// GradualPerformance yields performance values after every hitobject, driven
// by the caller's running score state.
type GradualPerformance struct {
	gradual *GradualDifficulty
	pp      *PPv2
}

func NewGradualPerformance(objs []objects.IHitObject, diff *difficulty.Difficulty) *GradualPerformance {
	return &GradualPerformance{
		gradual: NewGradualDifficulty(objs, diff),
		pp:      NewPPCalculator(),
	}
}

func (g *GradualPerformance) Remaining() int {
	return g.gradual.Remaining()
}

// Next consumes one hitobject and rates the given score state against the map
// prefix that ends with it.
func (g *GradualPerformance) Next(state api.ScoreState) (results api.PPv2Results, ok bool) {
	attr, ok := g.gradual.Next()
	if !ok {
		return results, false
	}

	// The attributes come from the same modifier set, so the mismatch error cannot trip.
	results, _ = g.pp.Calculate(attr, state, g.gradual.diff)

	return results, true
}

// AdvanceTo consumes objects up to and including the given index and rates the
// given score state against that prefix, fast-forwarding the difficulty cursor
// without materializing the intermediate attributes.
func (g *GradualPerformance) AdvanceTo(state api.ScoreState, index int) (results api.PPv2Results, ok bool) {
	attr, ok := g.gradual.AdvanceTo(index)
	if !ok {
		return results, false
	}

	results, _ = g.pp.Calculate(attr, state, g.gradual.diff)

	return results, true
}

// ProcessAll consumes every remaining object and rates the given score state
// against the complete map.
func (g *GradualPerformance) ProcessAll(state api.ScoreState) (results api.PPv2Results, ok bool) {
	return g.AdvanceTo(state, len(g.gradual.objs)-1)
}

// SynchronizedGradualDifficulty is a GradualDifficulty safe for concurrent use.
type SynchronizedGradualDifficulty struct {
	mu      sync.Mutex
	gradual *GradualDifficulty
}

func NewSynchronizedGradualDifficulty(objs []objects.IHitObject, diff *difficulty.Difficulty) *SynchronizedGradualDifficulty {
	return &SynchronizedGradualDifficulty{gradual: NewGradualDifficulty(objs, diff)}
}

func (s *SynchronizedGradualDifficulty) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.Remaining()
}

func (s *SynchronizedGradualDifficulty) Next() (api.Attributes, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.Next()
}

func (s *SynchronizedGradualDifficulty) AdvanceTo(index int) (api.Attributes, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.AdvanceTo(index)
}

func (s *SynchronizedGradualDifficulty) AdvanceToEnd() api.Attributes {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.AdvanceToEnd()
}

// SynchronizedGradualPerformance is a GradualPerformance safe for concurrent use.
type SynchronizedGradualPerformance struct {
	mu      sync.Mutex
	gradual *GradualPerformance
}

func NewSynchronizedGradualPerformance(objs []objects.IHitObject, diff *difficulty.Difficulty) *SynchronizedGradualPerformance {
	return &SynchronizedGradualPerformance{gradual: NewGradualPerformance(objs, diff)}
}

func (s *SynchronizedGradualPerformance) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.Remaining()
}

func (s *SynchronizedGradualPerformance) Next(state api.ScoreState) (api.PPv2Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.Next(state)
}

func (s *SynchronizedGradualPerformance) AdvanceTo(state api.ScoreState, index int) (api.PPv2Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.AdvanceTo(state, index)
}

func (s *SynchronizedGradualPerformance) ProcessAll(state api.ScoreState) (api.PPv2Results, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gradual.ProcessAll(state)
}
