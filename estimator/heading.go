package estimator

import "math"

// HeadingErrorEstimate is the scalar steering error consumed by the PID
// controller. Negative error commands a left turn, positive a right turn.
type HeadingErrorEstimate struct {
	Error    float64 // radians
	Velocity float64
}

// HeadingErrorEstimator derives a single steering error angle per scan.
type HeadingErrorEstimator struct {
	cfg Config
}

func NewHeadingErrorEstimator(cfg Config) *HeadingErrorEstimator {
	return &HeadingErrorEstimator{cfg: cfg}
}

// Estimate runs the PID-variant pipeline over one scan.
//
// The first arctangent term is the centerline-offset contribution; scaling
// the range disparity by L+R makes it invariant to the lane width. The
// second term is the wall-facing contribution: the forward trend sweep
// decides which wall the vehicle is angled toward, and the matching lateral
// range over the forward range gives the correction. The signs must stay
// exactly as derived; flipping either inverts the controller.
func (e *HeadingErrorEstimator) Estimate(ranges []float64) (HeadingErrorEstimate, error) {
	br, err := e.cfg.BoundaryRanges(ranges)
	if err != nil {
		return HeadingErrorEstimate{}, err
	}
	trend, err := e.cfg.TrendSum(ranges, e.cfg.ForwardIndex, e.cfg.TrendWindow)
	if err != nil {
		return HeadingErrorEstimate{}, err
	}

	term1 := math.Atan((br.Left - br.Right) / (2 * e.cfg.LaneConstant * (br.Left + br.Right)))

	var term2 float64
	if trend > 0 {
		term2 = math.Atan(-br.Right / br.Forward)
	} else {
		term2 = math.Atan(br.Left / br.Forward)
	}

	return HeadingErrorEstimate{
		Error:    NormalizeAngle(-term1 + term2),
		Velocity: e.cfg.Velocity,
	}, nil
}
