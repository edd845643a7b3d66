package tracking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPIDProportional(t *testing.T) {
	pid := NewPIDController(0.1, 0, 0, 160, 15)

	out := pid.Update(140)
	assert.InDelta(t, 2.0, out, 1e-9, "error 20 * Kp 0.1")

	out = pid.Update(180)
	assert.InDelta(t, -2.0, out, 1e-9, "error -20 * Kp 0.1")
}

func TestPIDAtSetpoint(t *testing.T) {
	pid := NewPIDController(0.0688, 0, 0.000001, 160, 15)
	assert.Zero(t, pid.Update(160))
}

func TestPIDClampsOutput(t *testing.T) {
	pid := NewPIDController(1.0, 0, 0, 160, 15)

	assert.Equal(t, 15.0, pid.Update(0), "large error clamps to +max")
	assert.Equal(t, -15.0, pid.Update(1000), "large error clamps to -max")
}

func TestPIDNoDerivativeKick(t *testing.T) {
	pid := NewPIDController(0, 0, 1.0, 160, 15)

	// First sample: derivative term must be zero even with large error.
	assert.Zero(t, pid.Update(0))

	// Second sample with the same error: no change, still zero.
	assert.Zero(t, pid.Update(0))

	// Error shrinks by 60: derivative term reacts.
	out := pid.Update(60)
	assert.InDelta(t, -60.0, out, 1e-9)
}

func TestPIDIntegralAntiWindup(t *testing.T) {
	pid := NewPIDController(0, 0.01, 0, 160, 15)

	// Sustained error would wind the integral far past the output
	// limit without the guard.
	for i := 0; i < 10000; i++ {
		pid.Update(0)
	}
	assert.LessOrEqual(t, math.Abs(pid.Update(0)), 15.0)

	// After the error flips, recovery is immediate rather than
	// waiting for a huge integral to unwind.
	out := pid.Update(320)
	assert.LessOrEqual(t, math.Abs(out), 15.0)
}

func TestPIDReset(t *testing.T) {
	pid := NewPIDController(0.1, 0.01, 0.5, 160, 15)
	pid.Update(100)
	pid.Update(120)

	pid.Reset()

	assert.Zero(t, pid.Error())
	// After reset the first update has no derivative contribution.
	out := pid.Update(140)
	assert.InDelta(t, 0.1*20+0.01*20, out, 1e-9)
}

func TestConvergence(t *testing.T) {
	cfg := DefaultConfig()
	pid := NewPIDController(cfg.YawKp, cfg.YawKi, cfg.YawKd, cfg.SetpointX, cfg.MaxYaw)

	// Simulated plant: each output unit moves the blob 10px back
	// toward center.
	measured := 300.0
	for i := 0; i < 200; i++ {
		out := pid.Update(measured)
		measured += out * 10
	}

	assert.InDelta(t, cfg.SetpointX, measured, 5.0, "tracker should settle near setpoint")
}
