package relay

// Message class flags. Each configured target carries a mask; a message is
// forwarded when the target mask covers the message flag.
const (
	FlagPose    = 1
	FlagHeading = 2
	FlagStatus  = 4
)
