package estimator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoseEstimateCentered(t *testing.T) {
	// Equal boundary ranges with the closest return dead ahead: the tie
	// breaks on the L >= R branch, giving -90 degrees, and the offset
	// projection collapses to zero.
	ranges := fullScan(10)
	ranges[ForwardBeamIndex] = 2.0

	est := NewPoseEstimator(MPCConfig())
	pose, err := est.Estimate(ranges, time.Now())
	require.NoError(t, err)

	assert.InDelta(t, -math.Pi/2, pose.Psi, 1e-12)
	assert.InDelta(t, 0, pose.Y, 1e-12)
	assert.Equal(t, 0.0, pose.X)
	assert.Equal(t, DefaultMPCVelocity, pose.V)
	assert.Equal(t, DefaultFirstInterval, pose.Interval)
}

func TestPoseEstimateMinOnLeftBoundary(t *testing.T) {
	// Minimum on the left lateral beam pulls the left average below the
	// right one, selecting the L < R branch: phi = (540-900)/4 + 90 = 0.
	ranges := fullScan(10)
	ranges[900] = 2.0

	est := NewPoseEstimator(MPCConfig())
	pose, err := est.Estimate(ranges, time.Now())
	require.NoError(t, err)

	assert.InDelta(t, 0, pose.Psi, 1e-12)
	// L averages (10+10+2+10+10)/5 = 8.4, R stays 10
	assert.InDelta(t, 0.5*(8.4-10)*math.Cos(0), pose.Y, 1e-12)
}

func TestPoseEstimateMinOnRightSide(t *testing.T) {
	// Closest return on the right side of the scan with L >= R:
	// phi = (540-340)/4 - 90 = -40 degrees.
	ranges := fullScan(10)
	ranges[340] = 3.0

	est := NewPoseEstimator(MPCConfig())
	pose, err := est.Estimate(ranges, time.Now())
	require.NoError(t, err)

	assert.InDelta(t, -40*math.Pi/180, pose.Psi, 1e-12)
}

func TestPoseEstimateInterval(t *testing.T) {
	ranges := fullScan(10)
	est := NewPoseEstimator(MPCConfig())

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first, err := est.Estimate(ranges, t0)
	require.NoError(t, err)
	assert.Equal(t, DefaultFirstInterval, first.Interval)

	second, err := est.Estimate(ranges, t0.Add(50*time.Millisecond))
	require.NoError(t, err)
	assert.InDelta(t, 0.05, second.Interval, 1e-9)
}

func TestPoseEstimateFailedScanLeavesStateUntouched(t *testing.T) {
	est := NewPoseEstimator(MPCConfig())
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// scan too short for the configured lateral windows
	_, err := est.Estimate(make([]float64, 100), t0)
	require.True(t, errors.Is(err, ErrIndexOutOfRange))

	// the next scan is still treated as the first one
	pose, err := est.Estimate(fullScan(10), t0.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, DefaultFirstInterval, pose.Interval)
}

func TestPoseEstimateDeterministic(t *testing.T) {
	ranges := fullScan(10)
	ranges[700] = 1.2
	ranges[33] = math.NaN()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	a, err := NewPoseEstimator(MPCConfig()).Estimate(ranges, at)
	require.NoError(t, err)
	b, err := NewPoseEstimator(MPCConfig()).Estimate(ranges, at)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("estimates differ (-a +b):\n%s", diff)
	}
}
