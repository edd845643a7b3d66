// Package tracking keeps a colored target centered in the camera frame
// by steering the robot's body attitude with PID control.
package tracking

import "time"

// Config holds all tunable parameters for color tracking.
type Config struct {
	// Timing
	LoopInterval time.Duration // How often to process a frame

	// Frame geometry. Setpoints are the frame center the controller
	// steers toward.
	FrameWidth  int
	FrameHeight int
	SetpointX   float64
	SetpointY   float64

	// Yaw PID (horizontal error -> body yaw)
	YawKp float64
	YawKi float64
	YawKd float64

	// Pitch PID (vertical error -> body pitch)
	PitchKp float64
	PitchKi float64
	PitchKd float64

	// Output limits in degrees, matching the attitude range the
	// motion daemon accepts.
	MaxYaw   float64
	MaxPitch float64

	// MinBlobRadius rejects specks of matching color. A blob only
	// counts when its enclosing circle is wider than this, in pixels.
	MinBlobRadius float64

	// LostFrames is how many consecutive empty frames before the
	// tracker resets the pose and waits for the target to reappear.
	LostFrames int
}

// DefaultConfig returns gains tuned on the robot at 320x240.
func DefaultConfig() Config {
	return Config{
		LoopInterval: 33 * time.Millisecond, // ~30 Hz

		FrameWidth:  320,
		FrameHeight: 240,
		SetpointX:   160,
		SetpointY:   120,

		YawKp: 0.0688,
		YawKi: 0,
		YawKd: 0.000001,

		PitchKp: 0.07,
		PitchKi: 0,
		PitchKd: 0,

		MaxYaw:   15,
		MaxPitch: 11,

		MinBlobRadius: 10,
		LostFrames:    10,
	}
}

// SmoothConfig returns gains for slower, less twitchy tracking.
func SmoothConfig() Config {
	cfg := DefaultConfig()
	cfg.YawKp = 0.045
	cfg.PitchKp = 0.05
	cfg.LoopInterval = 50 * time.Millisecond
	return cfg
}
