package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]*Params {
	t.Helper()
	dir := t.TempDir()

	file, err := Open(KindFile, filepath.Join(dir, "params"))
	require.NoError(t, err)

	sqlite, err := Open(KindSQLite, filepath.Join(dir, "params.db"))
	require.NoError(t, err)

	mem, err := Open(KindMemory, "")
	require.NoError(t, err)

	t.Cleanup(func() {
		file.Close()
		sqlite.Close()
		mem.Close()
	})
	return map[string]*Params{"file": file, "sqlite": sqlite, "memory": mem}
}

func TestParams_Backends(t *testing.T) {
	for name, p := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "", p.Get(DynamicLaneProfile), "missing key reads empty")
			assert.False(t, p.GetBool(SpeedLimitControl))

			require.NoError(t, p.Put(DynamicLaneProfile, "1"))
			assert.Equal(t, "1", p.Get(DynamicLaneProfile))

			require.NoError(t, p.Put(DynamicLaneProfile, "2"))
			assert.Equal(t, "2", p.Get(DynamicLaneProfile), "overwrite")

			require.NoError(t, p.PutBool(SpeedLimitControl, true))
			assert.Equal(t, "1", p.Get(SpeedLimitControl))
			assert.True(t, p.GetBool(SpeedLimitControl))

			require.NoError(t, p.PutBool(SpeedLimitControl, false))
			assert.Equal(t, "0", p.Get(SpeedLimitControl))
			assert.False(t, p.GetBool(SpeedLimitControl))

			require.NoError(t, p.Remove(DynamicLaneProfile))
			assert.Equal(t, "", p.Get(DynamicLaneProfile))
			assert.NoError(t, p.Remove(DynamicLaneProfile), "removing twice is fine")
		})
	}
}

func TestParams_GetBoolExactOne(t *testing.T) {
	p := New(NewMemBackend())
	for _, v := range []string{"true", "2", " 1", "yes", ""} {
		require.NoError(t, p.Put(DynamicLaneProfileToggle, v))
		assert.False(t, p.GetBool(DynamicLaneProfileToggle), "value %q", v)
	}
}

func TestParams_UnknownKey(t *testing.T) {
	p := New(NewMemBackend())
	err := p.Put("NotAParam", "1")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, "", p.Get("NotAParam"))
}

func TestFileBackend_PersistsAcrossOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "params")

	p, err := Open(KindFile, dir)
	require.NoError(t, err)
	require.NoError(t, p.Put(LongitudinalPersonality, "3"))
	require.NoError(t, p.Close())

	data, err := os.ReadFile(filepath.Join(dir, LongitudinalPersonality))
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	p2, err := Open(KindFile, dir)
	require.NoError(t, err)
	assert.Equal(t, "3", p2.Get(LongitudinalPersonality))
}

func TestSQLiteBackend_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "params.db")

	p, err := Open(KindSQLite, path)
	require.NoError(t, err)
	require.NoError(t, p.PutBool(DynamicLaneProfileToggle, true))
	require.NoError(t, p.Close())

	p2, err := Open(KindSQLite, path)
	require.NoError(t, err)
	defer p2.Close()
	assert.True(t, p2.GetBool(DynamicLaneProfileToggle))
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open("redis", "")
	assert.Error(t, err)
}

func TestSeedDefaults(t *testing.T) {
	p := New(NewMemBackend())
	require.NoError(t, p.Put(LongitudinalPersonality, "0"))

	seeded, err := SeedDefaults(p)
	require.NoError(t, err)

	assert.NotContains(t, seeded, LongitudinalPersonality, "existing values are kept")
	assert.NotContains(t, seeded, DongleID, "empty defaults are not written")
	assert.Contains(t, seeded, DynamicLaneProfile)
	assert.Equal(t, "0", p.Get(LongitudinalPersonality))
	assert.Equal(t, "2", p.Get(DynamicLaneProfile))

	again, err := SeedDefaults(p)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestEnsureDeviceID(t *testing.T) {
	p := New(NewMemBackend())

	id, err := EnsureDeviceID(p)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	again, err := EnsureDeviceID(p)
	require.NoError(t, err)
	assert.Equal(t, id, again, "id is stable once stored")
}

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()
	assert.IsIncreasing(t, keys)
	for _, k := range []string{DynamicLaneProfile, DynamicLaneProfileToggle, LongitudinalPersonality, SpeedLimitControl} {
		assert.True(t, IsKnown(k), k)
	}
}
