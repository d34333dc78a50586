package onroad

import "onroad-options/pkg/params"

// NeutralIconColor is shown for values outside an option's table.
const NeutralIconColor = "#3B4356"

// Display is what a row shows for one option value.
type Display struct {
	IconColor string
	Title     string
	Subtitle  string
}

type entry struct {
	title string
	color string
}

const (
	laneProfileSubtitle       = "Dynamic Lane Profile"
	gapPersonalitySubtitle    = "Driving Personality"
	speedLimitControlSubtitle = "Speed Limit Control"
)

var laneProfileTable = map[int]entry{
	0: {"Laneful", "#2020f8"},
	1: {"Laneless", "#0df87a"},
	2: {"Auto", "#0df8f8"},
}

var gapPersonalityTable = map[int]entry{
	0: {"Maniac Gap", "#ff4b4b"},
	1: {"Aggressive Gap", "#fcff4b"},
	2: {"Stock Gap", "#4bff66"},
	3: {"Relax Gap", "#6a0ac9"},
}

var speedLimitControlTable = map[int]entry{
	0: {"Disabled", "#3B4356"},
	1: {"Enabled", "#0df87a"},
}

func lookup(table map[int]entry, subtitle string, v int) Display {
	d := Display{IconColor: NeutralIconColor, Subtitle: subtitle}
	if e, ok := table[v]; ok {
		d.Title = e.title
		d.IconColor = e.color
	}
	return d
}

// LaneProfileDisplay maps a DynamicLaneProfile value to its row content.
func LaneProfileDisplay(v int) Display {
	return lookup(laneProfileTable, laneProfileSubtitle, v)
}

// GapPersonalityDisplay maps a LongitudinalPersonality value.
func GapPersonalityDisplay(v int) Display {
	return lookup(gapPersonalityTable, gapPersonalitySubtitle, v)
}

// SpeedLimitControlDisplay maps a SpeedLimitControl value.
func SpeedLimitControlDisplay(v int) Display {
	return lookup(speedLimitControlTable, speedLimitControlSubtitle, v)
}

const (
	laneProfileModes = 3
	gapPersonalities = 4
)

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// NextLaneProfile steps Laneful -> Laneless -> Auto -> Laneful.
func NextLaneProfile(v int) int {
	return wrap(v+1, laneProfileModes)
}

// NextGapPersonality steps toward a closer gap, wrapping Maniac back to Relax.
func NextGapPersonality(v int) int {
	return wrap(v-1, gapPersonalities)
}

// OptionState is the panel's cached copy of the persisted option values.
type OptionState struct {
	LaneProfileMode          int
	GapPersonality           int
	SpeedLimitControlEnabled bool
}

// Reader is the read side of the params store.
type Reader interface {
	Get(key string) string
	GetBool(key string) bool
}

// LoadOptionState reads all three options. Absent or garbage values read
// as zero.
func LoadOptionState(r Reader) OptionState {
	return OptionState{
		LaneProfileMode:          Atoi(r.Get(params.DynamicLaneProfile)),
		GapPersonality:           Atoi(r.Get(params.LongitudinalPersonality)),
		SpeedLimitControlEnabled: r.GetBool(params.SpeedLimitControl),
	}
}

// Atoi parses a leading base-10 integer the way C's atoi does: optional
// leading whitespace and sign, then digits up to the first non-digit.
// Anything without a digit prefix is 0.
func Atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || (s[i] >= '\t' && s[i] <= '\r')) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}
