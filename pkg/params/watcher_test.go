package params

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	key, value string
}

func TestWatcher_NotifiesOnChange(t *testing.T) {
	p := New(NewMemBackend())
	require.NoError(t, p.Put(DynamicLaneProfile, "1"))

	w := NewWatcher(p, 0)
	var got []notification
	w.Subscribe(func(key, value string) {
		got = append(got, notification{key, value})
	})

	w.AddParam(DynamicLaneProfile)
	w.AddParam(SpeedLimitControl)
	assert.Equal(t, 0, w.Check(), "registration sets the baseline")

	require.NoError(t, p.Put(DynamicLaneProfile, "2"))
	require.NoError(t, p.PutBool(SpeedLimitControl, true))
	require.NoError(t, p.Put(LongitudinalPersonality, "3"))

	assert.Equal(t, 2, w.Check())
	assert.Equal(t, []notification{
		{DynamicLaneProfile, "2"},
		{SpeedLimitControl, "1"},
	}, got, "unwatched keys are ignored")

	assert.Equal(t, 0, w.Check(), "no repeat without a new change")
}

func TestWatcher_AddParamIdempotent(t *testing.T) {
	p := New(NewMemBackend())
	w := NewWatcher(p, 0)

	w.AddParam(DynamicLaneProfile)
	require.NoError(t, p.Put(DynamicLaneProfile, "1"))
	w.AddParam(DynamicLaneProfile)

	assert.Equal(t, []string{DynamicLaneProfile}, w.Watched())
	assert.Equal(t, 1, w.Check(), "re-registering does not reset the baseline")
}

func TestWatcher_ListenerWritesAreSeenNextCheck(t *testing.T) {
	p := New(NewMemBackend())
	w := NewWatcher(p, 0)
	w.AddParam(DynamicLaneProfile)
	w.AddParam(LongitudinalPersonality)

	calls := 0
	w.Subscribe(func(key, value string) {
		calls++
		if key == DynamicLaneProfile {
			require.NoError(t, p.Put(LongitudinalPersonality, "1"))
			assert.Equal(t, 0, w.Check(), "nested check is refused")
		}
	})

	require.NoError(t, p.Put(DynamicLaneProfile, "1"))
	assert.Equal(t, 1, w.Check())
	assert.Equal(t, 1, calls)

	assert.Equal(t, 1, w.Check())
	assert.Equal(t, 2, calls)
}

func TestWatcher_PollThrottled(t *testing.T) {
	p := New(NewMemBackend())
	w := NewWatcher(p, time.Hour)
	w.AddParam(SpeedLimitControl)

	assert.Equal(t, 0, w.Poll(), "first poll consumes the burst")

	require.NoError(t, p.PutBool(SpeedLimitControl, true))
	assert.Equal(t, 0, w.Poll(), "throttled")
	assert.Equal(t, 1, w.Check(), "check bypasses the limiter")
}
