package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onroad-options/pkg/config"
	"onroad-options/pkg/params"
)

func runCmd(t *testing.T, store *params.Params, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), &out, cfg, store, "", args)
	return out.String(), err
}

func TestRunPutAndGet(t *testing.T) {
	store := params.New(params.NewMemBackend())
	cfg := config.FromEnv(func(string) string { return "" })

	_, err := runCmd(t, store, cfg, "put", params.LongitudinalPersonality, "3")
	require.NoError(t, err)

	out, err := runCmd(t, store, cfg, "get", params.LongitudinalPersonality)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestRunPutBool(t *testing.T) {
	store := params.New(params.NewMemBackend())
	cfg := config.FromEnv(func(string) string { return "" })

	_, err := runCmd(t, store, cfg, "putbool", params.SpeedLimitControl, "true")
	require.NoError(t, err)
	assert.Equal(t, "1", store.Get(params.SpeedLimitControl))

	_, err = runCmd(t, store, cfg, "putbool", params.SpeedLimitControl, "nope")
	assert.Error(t, err)
	assert.Equal(t, "1", store.Get(params.SpeedLimitControl))
}

func TestRunList(t *testing.T) {
	store := params.New(params.NewMemBackend())
	cfg := config.FromEnv(func(string) string { return "" })
	require.NoError(t, store.Put(params.DynamicLaneProfile, "1"))

	out, err := runCmd(t, store, cfg, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(params.KnownKeys()))
	assert.Contains(t, lines, params.DynamicLaneProfile+"=1")
}

func TestRunRejectsBadInput(t *testing.T) {
	store := params.New(params.NewMemBackend())
	cfg := config.FromEnv(func(string) string { return "" })

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"frobnicate"}},
		{"get unknown key", []string{"get", "NotAParam"}},
		{"get missing key", []string{"get"}},
		{"put unknown key", []string{"put", "NotAParam", "1"}},
		{"put missing value", []string{"put", params.DynamicLaneProfile}},
		{"backup without bucket", []string{"backup"}},
		{"restore without bucket", []string{"restore"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, store, cfg, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRunBackupNeedsDeviceID(t *testing.T) {
	store := params.New(params.NewMemBackend())
	cfg := config.FromEnv(func(key string) string {
		if key == "PARAMS_BACKUP_BUCKET" {
			return "bucket"
		}
		return ""
	})

	_, err := runCmd(t, store, cfg, "backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device id")
}
