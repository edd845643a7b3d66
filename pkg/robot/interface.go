// Package robot provides interfaces and implementations for quadruped
// robot control.
//
// This package follows the Interface Segregation Principle (ISP) by defining
// small, focused interfaces that can be composed as needed. Consumers should
// depend only on the interfaces they actually use.
package robot

import "context"

// Direction identifies a translation axis for gait movement.
type Direction string

const (
	// Forward walks along the +x axis.
	Forward Direction = "forward"

	// Backward walks along the -x axis.
	Backward Direction = "backward"

	// Left strafes along the +y axis.
	Left Direction = "left"

	// Right strafes along the -y axis.
	Right Direction = "right"
)

// Turn directions for in-place rotation.
const (
	TurnLeft  = "left"
	TurnRight = "right"
)

// Pace controls gait cadence.
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceNormal Pace = "normal"
	PaceFast   Pace = "fast"
)

// AttitudeController provides body attitude control.
// Use this minimal interface when only attitude is needed (e.g., tracking).
type AttitudeController interface {
	// SetAttitude tilts the body in degrees. Values beyond the
	// mechanical limits are clamped.
	SetAttitude(roll, pitch, yaw float64) error

	// ResetPose returns the body to the neutral stance.
	ResetPose() error
}

// GaitController provides walking and turning control.
type GaitController interface {
	// Move walks in a direction at a speed in [0, 100]. The gait
	// continues until Stop is called.
	Move(direction Direction, speed int) error

	// Turn rotates in place. Positive speed turns left, negative
	// right, magnitude in [0, 100]. Rotation continues until Stop.
	Turn(speed int) error

	// TurnByAngle rotates through an angle and stops. It blocks for
	// the duration of the turn.
	TurnByAngle(ctx context.Context, direction string, degrees float64) error

	// Stop halts all gait movement.
	Stop() error

	// SetPace adjusts gait cadence.
	SetPace(pace Pace) error
}

// ActionController triggers preset choreographed actions.
type ActionController interface {
	// PerformAction runs a numbered preset action (sit, wave, stretch).
	PerformAction(id int) error
}

// StatusController provides robot status queries.
type StatusController interface {
	// Battery returns the charge level in percent.
	Battery() (int, error)

	// DaemonState returns the motion daemon state string.
	DaemonState() (string, error)
}

// Controller is the composite interface for full robot control.
// It combines all individual control interfaces.
type Controller interface {
	AttitudeController
	GaitController
	ActionController
	StatusController
}

// Ensure HTTPController implements Controller
var _ Controller = (*HTTPController)(nil)
