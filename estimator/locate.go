package estimator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BoundaryRanges holds the averaged distances to the lane boundaries at the
// fixed lateral beam angles, plus the forward range where the variant needs
// it.
type BoundaryRanges struct {
	Right   float64
	Forward float64
	Left    float64
}

// LateralRanges extracts the right and left boundary ranges at the configured
// lateral beam indices.
func (c Config) LateralRanges(ranges []float64) (BoundaryRanges, error) {
	right, err := c.AverageRange(ranges, c.RightIndex, c.HalfWindow)
	if err != nil {
		return BoundaryRanges{}, fmt.Errorf("right boundary: %w", err)
	}
	left, err := c.AverageRange(ranges, c.LeftIndex, c.HalfWindow)
	if err != nil {
		return BoundaryRanges{}, fmt.Errorf("left boundary: %w", err)
	}
	return BoundaryRanges{Right: right, Left: left}, nil
}

// BoundaryRanges extracts right, forward and left ranges.
func (c Config) BoundaryRanges(ranges []float64) (BoundaryRanges, error) {
	br, err := c.LateralRanges(ranges)
	if err != nil {
		return BoundaryRanges{}, err
	}
	forward, err := c.AverageRange(ranges, c.ForwardIndex, c.HalfWindow)
	if err != nil {
		return BoundaryRanges{}, fmt.Errorf("forward range: %w", err)
	}
	br.Forward = forward
	return br, nil
}

// MinimumRange is the global extremum over one scan: the closest sanitized
// return and the beam it occurred on.
type MinimumRange struct {
	Distance float64
	Index    int
}

// MinRange scans the whole range array once and returns the smallest
// sanitized value with its beam index. Ties resolve to the lowest index.
func (c Config) MinRange(ranges []float64) (MinimumRange, error) {
	if len(ranges) == 0 {
		return MinimumRange{}, ErrEmptyScan
	}
	clean := make([]float64, len(ranges))
	for i, r := range ranges {
		clean[i] = c.Sanitize(r)
	}
	idx := floats.MinIdx(clean)
	return MinimumRange{Distance: clean[idx], Index: idx}, nil
}

// TrendSum sweeps a short arc around the given beam and sums the first-order
// differences between consecutive sanitized ranges. Odd lengths round up to
// the next even number. The loop takes length+1 difference terms, i in
// [-length/2, length/2], so the sum telescopes to
// range(index+length/2+1) - range(index-length/2).
//
// A positive result means range grows with beam index across the arc: the
// vehicle's forward beam is angled toward the right lane boundary. Negative
// means the left one.
func (c Config) TrendSum(ranges []float64, index, length int) (float64, error) {
	if length%2 == 1 {
		length++
	}
	half := length / 2
	lo, hi := index-half, index+half+1
	if lo < 0 || hi >= len(ranges) {
		return 0, fmt.Errorf("trend window [%d,%d] over %d beams: %w", lo, hi, len(ranges), ErrIndexOutOfRange)
	}
	sum := 0.0
	for i := -half; i <= half; i++ {
		sum += c.Sanitize(ranges[index+i+1]) - c.Sanitize(ranges[index+i])
	}
	return sum, nil
}
