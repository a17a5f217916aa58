package estimator

import "math"

// NormalizeAngle wraps an angle in radians into (-pi, pi]. Terminates for any
// finite input after |angle|/2pi iterations.
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
