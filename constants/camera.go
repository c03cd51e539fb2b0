package constants

import "time"

// Camera
const (
	// CameraStartThreshold is the player height at which the camera starts moving
	CameraStartThreshold = 5.0

	// CameraCatchUp is the player lead above which the camera chases instead of climbing
	CameraCatchUp = 1.0

	CameraBaseSpeed = 2.0
	CameraSpeedStep = 0.5
	CameraMaxSpeed  = 10.0

	// CameraSpeedInterval is the time between speed increments
	CameraSpeedInterval = 30 * time.Second

	// CameraHalfHeight is half the visible world height; the bottom edge ends the run
	CameraHalfHeight = 6.0
)
