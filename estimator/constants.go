package estimator

// Scanner geometry mirrored from the Hokuyo UST-10LX mount used on the
// vehicle: 270 degree detection angle at 0.25 degree resolution, so
// 1080+1 beams. Beam i sits at angle i*0.25 degrees from the start of the
// detection range; 135 degrees (beam 540) points straight ahead.
const (
	FieldOfViewDeg   = 270.0
	ResolutionDeg    = 0.25
	BeamCount        = 1081
	BeamsPerDegree   = 4
	RightBeamIndex   = 180 // 45 degrees, three o'clock
	ForwardBeamIndex = 540 // 135 degrees, dead ahead
	LeftBeamIndex    = 900 // 225 degrees, nine o'clock
)

const (
	DefaultRangeMin      = 0.02
	DefaultRangeMax      = 30.0
	DefaultRangeFallback = 50.0

	// Half-window for boundary range averaging: 2 auxiliary beams on
	// either side of the main one.
	DefaultHalfWindow = 2

	// Window length for the forward trend sweep, in beams.
	DefaultTrendWindow = 8

	// Lane-width normalization constant from the controller derivation.
	DefaultLaneConstant = 5.0

	// Nominal forward velocities commanded alongside the estimates.
	DefaultMPCVelocity = 12.0
	DefaultPIDVelocity = 30.0

	// Sampling interval assumed for the very first scan, seconds.
	DefaultFirstInterval = 0.01
)
