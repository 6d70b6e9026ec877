package difficulty

import "strings"

// Modifier is the classic modifier bit-set.
type Modifier int64

const (
	NoFail Modifier = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore // always used with DoubleTime
	Flashlight
	Autoplay
	SpunOut
	Autopilot
	Perfect
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	Target
	Key9
	Coop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
	Lazer // out-of-band flag, not part of the legacy bit-set
	None  Modifier = 0
)

// SpeedChanging contains every modifier affecting the clock rate.
const SpeedChanging = DoubleTime | HalfTime | Nightcore

// MapChanging contains every modifier affecting timing or geometry.
const MapChanging = SpeedChanging | HardRock | Easy

var modNames = []struct {
	mod  Modifier
	name string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{TouchDevice, "TD"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{SuddenDeath, "SD"},
	{Nightcore, "NC"},
	{DoubleTime, "DT"},
	{Relax, "RX"},
	{HalfTime, "HT"},
	{Flashlight, "FL"},
	{Autoplay, "AT"},
	{SpunOut, "SO"},
	{Autopilot, "AP"},
	{Perfect, "PF"},
	{ScoreV2, "V2"},
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod > 0
}

// Compose resolves nested shortcuts, so NC implies DT and PF implies SD.
func (mods Modifier) Compose() Modifier {
	if mods.Active(Nightcore) {
		mods |= DoubleTime
	}

	if mods.Active(Perfect) {
		mods |= SuddenDeath
	}

	return mods
}

// GetSpeed returns the clock rate multiplier of the set.
// DoubleTime takes precedence when both rate mods are present.
func (mods Modifier) GetSpeed() float64 {
	mods = mods.Compose()

	if mods.Active(DoubleTime) {
		return 1.5
	} else if mods.Active(HalfTime) {
		return 0.75
	}

	return 1.0
}

// GetDifficultyMultiplier returns the AR/OD/HP scale of the set.
// HardRock takes precedence when both are present.
func (mods Modifier) GetDifficultyMultiplier() float64 {
	if mods.Active(HardRock) {
		return 1.4
	} else if mods.Active(Easy) {
		return 0.5
	}

	return 1.0
}

func (mods Modifier) String() string {
	mods = mods.Compose()

	if mods.Active(Nightcore) {
		mods &= ^DoubleTime
	}

	if mods.Active(Perfect) {
		mods &= ^SuddenDeath
	}

	var sb strings.Builder

	for _, entry := range modNames {
		if mods.Active(entry.mod) {
			sb.WriteString(entry.name)
		}
	}

	return sb.String()
}

// GetDiffMaskedMods strips modifiers that have no effect on difficulty values.
func GetDiffMaskedMods(mods Modifier) Modifier {
	return mods & (HalfTime | DoubleTime | Nightcore | Easy | HardRock | Flashlight | Hidden | TouchDevice | Relax | SpunOut)
}

// ParseMods parses a two-letter acronym string like "HDDT" into a bit-set.
// Unknown acronyms are ignored.
func ParseMods(s string) (mods Modifier) {
	s = strings.ToUpper(s)

	for i := 0; i+2 <= len(s); i += 2 {
		acronym := s[i : i+2]

		for _, entry := range modNames {
			if entry.name == acronym {
				mods |= entry.mod
				break
			}
		}
	}

	return mods.Compose()
}
