package scan

import "time"

// Scan is a single planar range scan: one non-negative distance per beam,
// ordered by beam index over a fixed field of view. The index-to-angle
// mapping is configuration shared by producer and consumer, not data.
type Scan struct {
	Seq       uint32
	Timestamp time.Time // capture time of the scan
	Ranges    []float64
}

// AngleDeg returns the angle of beam index from the start of the detection
// range, given the angular resolution in degrees per beam.
func AngleDeg(index int, resolutionDeg float64) float64 {
	return float64(index) * resolutionDeg
}
