package onroad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLaneProfile_Cycles(t *testing.T) {
	for v := 0; v < laneProfileModes; v++ {
		cur := v
		for n := 1; n <= 10; n++ {
			cur = NextLaneProfile(cur)
			assert.Equal(t, (v+n)%3, cur, "start %d after %d steps", v, n)
		}
	}
}

func TestNextGapPersonality_Cycles(t *testing.T) {
	for v := 0; v < gapPersonalities; v++ {
		cur := v
		for n := 1; n <= 10; n++ {
			cur = NextGapPersonality(cur)
			assert.Equal(t, ((v-n)%4+4)%4, cur, "start %d after %d steps", v, n)
		}
	}
	assert.Equal(t, 3, NextGapPersonality(0), "maniac wraps to relax")
}

func TestNext_OutOfRangeWrapsIntoDomain(t *testing.T) {
	assert.Equal(t, 2, NextLaneProfile(7))
	assert.Equal(t, 0, NextLaneProfile(-2))
	assert.Equal(t, 2, NextGapPersonality(7))
	assert.Equal(t, 2, NextGapPersonality(-1))
}

func TestDisplayTables(t *testing.T) {
	tests := []struct {
		name   string
		got    Display
		expect Display
	}{
		{"laneful", LaneProfileDisplay(0), Display{"#2020f8", "Laneful", "Dynamic Lane Profile"}},
		{"laneless", LaneProfileDisplay(1), Display{"#0df87a", "Laneless", "Dynamic Lane Profile"}},
		{"auto", LaneProfileDisplay(2), Display{"#0df8f8", "Auto", "Dynamic Lane Profile"}},
		{"lane unknown", LaneProfileDisplay(3), Display{NeutralIconColor, "", "Dynamic Lane Profile"}},
		{"maniac", GapPersonalityDisplay(0), Display{"#ff4b4b", "Maniac Gap", "Driving Personality"}},
		{"aggressive", GapPersonalityDisplay(1), Display{"#fcff4b", "Aggressive Gap", "Driving Personality"}},
		{"stock", GapPersonalityDisplay(2), Display{"#4bff66", "Stock Gap", "Driving Personality"}},
		{"relax", GapPersonalityDisplay(3), Display{"#6a0ac9", "Relax Gap", "Driving Personality"}},
		{"gap unknown", GapPersonalityDisplay(-1), Display{NeutralIconColor, "", "Driving Personality"}},
		{"slc disabled", SpeedLimitControlDisplay(0), Display{"#3B4356", "Disabled", "Speed Limit Control"}},
		{"slc enabled", SpeedLimitControlDisplay(1), Display{"#0df87a", "Enabled", "Speed Limit Control"}},
		{"slc unknown", SpeedLimitControlDisplay(2), Display{NeutralIconColor, "", "Speed Limit Control"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.got)
		})
	}
}

func TestAtoi(t *testing.T) {
	tests := map[string]int{
		"":      0,
		"0":     0,
		"2":     2,
		"  3":   3,
		"\n1":   1,
		"-1":    -1,
		"+2":    2,
		"12abc": 12,
		"abc":   0,
		"true":  0,
		"1.5":   1,
		"- 1":   0,
		"\x001": 0,
		"007":   7,
	}
	for in, want := range tests {
		assert.Equal(t, want, Atoi(in), "Atoi(%q)", in)
	}
}
