package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Sanitize corrects a single raw beam reading so that downstream arithmetic
// never sees NaN or infinity. NaN and readings below RangeMin collapse to 0
// ("blocked"); infinite or beyond-RangeMax readings become the finite
// RangeFallback ("open space").
func (c Config) Sanitize(raw float64) float64 {
	if math.IsNaN(raw) || raw < c.RangeMin {
		return 0
	}
	if math.IsInf(raw, 0) || raw > c.RangeMax {
		return c.RangeFallback
	}
	return raw
}

// AverageRange returns the mean sanitized range over the 2*half+1 beams
// centered on index. A window that extends past the scan bounds is a
// configuration defect and is not silently clipped.
func (c Config) AverageRange(ranges []float64, index, half int) (float64, error) {
	lo, hi := index-half, index+half
	if lo < 0 || hi >= len(ranges) {
		return 0, fmt.Errorf("average window [%d,%d] over %d beams: %w", lo, hi, len(ranges), ErrIndexOutOfRange)
	}
	window := make([]float64, 0, 2*half+1)
	for i := lo; i <= hi; i++ {
		window = append(window, c.Sanitize(ranges[i]))
	}
	return stat.Mean(window, nil), nil
}
