package onroad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onroad-options/pkg/params"
)

func TestRow_UpdateReadsKey(t *testing.T) {
	store := params.New(params.NewMemBackend())
	require.NoError(t, store.Put(params.LongitudinalPersonality, "1"))

	r := NewRow(store)
	assert.Equal(t, Display{}, r.Display(), "empty until first update")
	assert.False(t, r.Visible())

	r.UpdateGapAdjustCruise(params.LongitudinalPersonality)
	assert.Equal(t, "Aggressive Gap", r.Title())
	assert.Equal(t, "#fcff4b", r.IconColor())
	assert.Equal(t, "Driving Personality", r.Subtitle())

	r.UpdateDynamicLaneProfile(params.LongitudinalPersonality)
	assert.Equal(t, "Laneless", r.Title(), "the table follows the update call, not the row")
}

func TestRow_ActivationAndChanges(t *testing.T) {
	r := NewRow(params.New(params.NewMemBackend()))

	var order []int
	r.OnActivated(func() { order = append(order, 1) })
	r.OnActivated(func() { order = append(order, 2) })
	r.Activate()
	assert.Equal(t, []int{1, 2}, order)

	updates := 0
	r.onUpdate = func() { updates++ }
	r.SetPressed(true)
	r.SetPressed(true)
	r.SetVisible(true)
	r.UpdateSpeedLimitControl(params.SpeedLimitControl)
	r.UpdateSpeedLimitControl(params.SpeedLimitControl)
	assert.Equal(t, 3, updates, "only real changes notify")
	assert.True(t, r.Pressed())
	assert.Equal(t, "Disabled", r.Title())
}
