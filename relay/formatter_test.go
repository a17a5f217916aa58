package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 2024-05-01 12:00:00.250 UTC
const testTs = int64(1714564800250)

func TestFormatPose(t *testing.T) {
	got := string(FormatPose(testTs, -0.8, -1.5708, 12, 0.025))
	assert.Equal(t, "pose,20240501120000.250,-0.8000,-1.5708,12.00,0.0250\r\n", got)
}

func TestFormatHeadingError(t *testing.T) {
	got := string(FormatHeadingError(testTs, -0.4636, 30))
	assert.Equal(t, "pid,20240501120000.250,-0.4636,30.00\r\n", got)
}
