package relay

import (
	"fmt"
	"time"
)

// Line protocol consumed by the downstream controllers. One CRLF-terminated
// record per estimate:
//
//	pose,<time>,<y>,<psi>,<v>,<interval>
//	pid,<time>,<error>,<velocity>
//
// Angles are radians, distances meters, intervals seconds.

const timeLayout = "20060102150405.000"

// FormatPose renders an MPC pose record.
func FormatPose(ts int64, y, psi, v, interval float64) []byte {
	t := time.UnixMilli(ts).UTC()
	return []byte(fmt.Sprintf("pose,%s,%.4f,%.4f,%.2f,%.4f\r\n",
		t.Format(timeLayout), y, psi, v, interval))
}

// FormatHeadingError renders a PID steering-error record.
func FormatHeadingError(ts int64, errAngle, vel float64) []byte {
	t := time.UnixMilli(ts).UTC()
	return []byte(fmt.Sprintf("pid,%s,%.4f,%.2f\r\n",
		t.Format(timeLayout), errAngle, vel))
}
