package estimator

import (
	"math"
	"time"
)

// PoseEstimate is the full lateral-offset-plus-heading record consumed by the
// model-predictive controller. X is carried for wire compatibility and is
// always zero.
type PoseEstimate struct {
	X        float64
	Y        float64 // signed offset from the lane centerline, meters
	Psi      float64 // heading relative to the lane direction, radians
	V        float64 // nominal forward velocity
	Interval float64 // seconds since the previous scan
}

// PoseEstimator derives PoseEstimates from raw scans. The time of the
// previously processed scan is threaded through the struct rather than held
// as process-global state; scans are handled strictly one at a time, so no
// locking is needed around it.
type PoseEstimator struct {
	cfg      Config
	lastScan time.Time
}

func NewPoseEstimator(cfg Config) *PoseEstimator {
	return &PoseEstimator{cfg: cfg}
}

// Estimate runs the full MPC-variant pipeline over one scan captured at now.
// On error no estimate is emitted and the last-scan time is left untouched,
// so the next scan is processed cleanly.
func (e *PoseEstimator) Estimate(ranges []float64, now time.Time) (PoseEstimate, error) {
	br, err := e.cfg.LateralRanges(ranges)
	if err != nil {
		return PoseEstimate{}, err
	}
	min, err := e.cfg.MinRange(ranges)
	if err != nil {
		return PoseEstimate{}, err
	}

	// The closest return is assumed to lie on the nearer lane boundary.
	// Its beam offset from straight ahead, corrected by which side is
	// farther, gives the heading. Dividing the index offset by 4 converts
	// beams to degrees at 0.25 degree resolution. This is a modeling
	// approximation: nothing guarantees the global minimum sits on a
	// boundary.
	var phiDeg float64
	if br.Left >= br.Right {
		phiDeg = float64(e.cfg.ForwardIndex-min.Index)/BeamsPerDegree - 90
	} else {
		phiDeg = float64(e.cfg.ForwardIndex-min.Index)/BeamsPerDegree + 90
	}
	phi := NormalizeAngle(phiDeg * math.Pi / 180)

	// Projection of the lateral range disparity onto the heading gives the
	// perpendicular displacement from the centerline.
	offset := 0.5 * (br.Left - br.Right) * math.Cos(phi)

	interval := e.cfg.FirstInterval
	if !e.lastScan.IsZero() {
		interval = now.Sub(e.lastScan).Seconds()
	}
	e.lastScan = now

	return PoseEstimate{
		Y:        offset,
		Psi:      phi,
		V:        e.cfg.Velocity,
		Interval: interval,
	}, nil
}
