package estimator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantDefaults(t *testing.T) {
	mpc := MPCConfig()
	pid := PIDConfig()

	assert.Equal(t, DefaultMPCVelocity, mpc.Velocity)
	assert.Equal(t, DefaultPIDVelocity, pid.Velocity)

	// everything but the velocity is shared
	mpc.Velocity = 0
	pid.Velocity = 0
	if diff := cmp.Diff(mpc, pid); diff != "" {
		t.Errorf("variant base configs differ (-mpc +pid):\n%s", diff)
	}

	assert.Equal(t, RightBeamIndex, mpc.RightIndex)
	assert.Equal(t, ForwardBeamIndex, mpc.ForwardIndex)
	assert.Equal(t, LeftBeamIndex, mpc.LeftIndex)
}

func TestLoadTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"range_max": 20.0,
		"velocity": 8.5,
		"trend_window": 10
	}`), 0o644))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	cfg := MPCConfig()
	tuning.Apply(&cfg)

	want := MPCConfig()
	want.RangeMax = 20.0
	want.Velocity = 8.5
	want.TrendWindow = 10
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("tuned config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTuningErrors(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadTuning(path)
	assert.Error(t, err)
}

func TestTuningApplyNil(t *testing.T) {
	cfg := PIDConfig()
	var tuning *Tuning
	tuning.Apply(&cfg)
	assert.Equal(t, PIDConfig(), cfg)
}
