package estimator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullScan returns a scan of BeamCount beams, all at the given range.
func fullScan(r float64) []float64 {
	ranges := make([]float64, BeamCount)
	for i := range ranges {
		ranges[i] = r
	}
	return ranges
}

func TestLateralRanges(t *testing.T) {
	cfg := MPCConfig()
	ranges := fullScan(10)
	for i := cfg.RightIndex - 2; i <= cfg.RightIndex+2; i++ {
		ranges[i] = 2.0
	}
	for i := cfg.LeftIndex - 2; i <= cfg.LeftIndex+2; i++ {
		ranges[i] = 4.0
	}

	br, err := cfg.LateralRanges(ranges)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, br.Right, 1e-12)
	assert.InDelta(t, 4.0, br.Left, 1e-12)
	assert.Zero(t, br.Forward)
}

func TestBoundaryRanges(t *testing.T) {
	cfg := PIDConfig()
	ranges := fullScan(10)
	for i := cfg.ForwardIndex - 2; i <= cfg.ForwardIndex+2; i++ {
		ranges[i] = 6.0
	}

	br, err := cfg.BoundaryRanges(ranges)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, br.Right, 1e-12)
	assert.InDelta(t, 6.0, br.Forward, 1e-12)
	assert.InDelta(t, 10.0, br.Left, 1e-12)
}

func TestBoundaryRangesShortScan(t *testing.T) {
	cfg := PIDConfig()
	// long enough for the right window at 180 but not the left at 900
	_, err := cfg.BoundaryRanges(make([]float64, 200))
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestMinRange(t *testing.T) {
	cfg := MPCConfig()

	t.Run("unique minimum", func(t *testing.T) {
		ranges := fullScan(10)
		ranges[900] = 2.0
		min, err := cfg.MinRange(ranges)
		require.NoError(t, err)
		assert.Equal(t, 2.0, min.Distance)
		assert.Equal(t, 900, min.Index)
	})

	t.Run("tie resolves to lowest index", func(t *testing.T) {
		ranges := fullScan(10)
		ranges[300] = 1.5
		ranges[700] = 1.5
		min, err := cfg.MinRange(ranges)
		require.NoError(t, err)
		assert.Equal(t, 300, min.Index)
	})

	t.Run("nan beam sanitizes to the global minimum", func(t *testing.T) {
		ranges := fullScan(10)
		ranges[42] = math.NaN()
		min, err := cfg.MinRange(ranges)
		require.NoError(t, err)
		assert.Equal(t, 0.0, min.Distance)
		assert.Equal(t, 42, min.Index)
	})

	t.Run("empty scan", func(t *testing.T) {
		_, err := cfg.MinRange(nil)
		assert.True(t, errors.Is(err, ErrEmptyScan))
	})
}

func TestTrendSum(t *testing.T) {
	cfg := PIDConfig()

	ramp := func(slope float64) []float64 {
		ranges := fullScan(10)
		for i := cfg.ForwardIndex - 8; i <= cfg.ForwardIndex+8; i++ {
			ranges[i] = 10 + slope*float64(i-cfg.ForwardIndex)
		}
		return ranges
	}

	t.Run("increasing arc is positive", func(t *testing.T) {
		sum, err := cfg.TrendSum(ramp(0.1), cfg.ForwardIndex, 8)
		require.NoError(t, err)
		assert.Greater(t, sum, 0.0)
	})

	t.Run("decreasing arc is negative", func(t *testing.T) {
		sum, err := cfg.TrendSum(ramp(-0.1), cfg.ForwardIndex, 8)
		require.NoError(t, err)
		assert.Less(t, sum, 0.0)
	})

	// The sweep takes length+1 consecutive difference terms, so the sum
	// telescopes to range(center+length/2+1) - range(center-length/2).
	// That is the one documented interpretation of the window; the
	// assertions below pin it down.
	t.Run("sum telescopes across the window", func(t *testing.T) {
		ranges := fullScan(10)
		for i := 530; i <= 550; i++ {
			ranges[i] = 10 + math.Sin(float64(i))
		}
		sum, err := cfg.TrendSum(ranges, 540, 8)
		require.NoError(t, err)
		want := cfg.Sanitize(ranges[545]) - cfg.Sanitize(ranges[536])
		assert.InDelta(t, want, sum, 1e-9)
	})

	t.Run("odd length rounds up", func(t *testing.T) {
		ranges := ramp(0.05)
		odd, err := cfg.TrendSum(ranges, 540, 7)
		require.NoError(t, err)
		even, err := cfg.TrendSum(ranges, 540, 8)
		require.NoError(t, err)
		assert.Equal(t, even, odd)
	})

	t.Run("window past scan bounds fails", func(t *testing.T) {
		_, err := cfg.TrendSum(fullScan(10), BeamCount-2, 8)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = cfg.TrendSum(fullScan(10), 2, 8)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	})
}
