package carstate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onroad-options/pkg/params"
)

type boolMap map[string]bool

func (b boolMap) GetBool(key string) bool { return b[key] }

func TestHasLongitudinalControl(t *testing.T) {
	tests := []struct {
		name   string
		cp     CarParams
		optIn  bool
		expect bool
	}{
		{"stock longitudinal", CarParams{}, false, false},
		{"openpilot longitudinal", CarParams{OpenpilotLongitudinalControl: true}, false, true},
		{"experimental not enabled", CarParams{ExperimentalLongitudinalAvailable: true}, false, false},
		{"experimental enabled", CarParams{ExperimentalLongitudinalAvailable: true}, true, true},
		{"experimental overrides flag", CarParams{ExperimentalLongitudinalAvailable: true, OpenpilotLongitudinalControl: true}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := boolMap{params.ExperimentalLongitudinalEnabled: tt.optIn}
			assert.Equal(t, tt.expect, HasLongitudinalControl(tt.cp, store))
		})
	}
}

func writeFixture(t *testing.T, path, body string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestFileSource_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "car_params.yaml")
	base := time.Now().Add(-time.Hour)

	src := NewFileSource(path, time.Second)
	assert.Equal(t, CarParams{}, src.CarParams(), "missing file gives empty snapshot")

	writeFixture(t, path, "carName: HYUNDAI_SONATA\nopenpilotLongitudinalControl: true\n", base)
	assert.True(t, src.Reload())
	assert.Equal(t, CarParams{CarName: "HYUNDAI_SONATA", OpenpilotLongitudinalControl: true}, src.CarParams())

	assert.False(t, src.Reload(), "unchanged file is not re-read")

	writeFixture(t, path, "carName: [broken", base.Add(time.Minute))
	assert.False(t, src.Reload())
	assert.True(t, src.CarParams().OpenpilotLongitudinalControl, "bad file keeps last snapshot")

	require.NoError(t, os.Remove(path))
	assert.True(t, src.Reload())
	assert.Equal(t, CarParams{}, src.CarParams(), "removed file clears snapshot")
}

func TestFileSource_PollThrottled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "car_params.yaml")
	src := NewFileSource(path, time.Hour)

	writeFixture(t, path, "openpilotLongitudinalControl: true\n", time.Now())
	assert.False(t, src.Poll(), "checked at construction")
	assert.False(t, src.CarParams().OpenpilotLongitudinalControl)
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{CarName: "TOYOTA_RAV4", OpenpilotLongitudinalControl: true}
	assert.Equal(t, "TOYOTA_RAV4", src.CarParams().CarName)
}

func TestFileSource_NilIsEmptySnapshot(t *testing.T) {
	var s *FileSource
	var src Source = s

	assert.Equal(t, CarParams{}, src.CarParams())
	assert.False(t, s.Poll())
}
