package tracking

// PIDController implements proportional-integral-derivative control
// for one attitude axis.
type PIDController struct {
	// Gains
	Kp float64 // Proportional gain
	Ki float64 // Integral gain
	Kd float64 // Derivative gain

	// Setpoint is the measurement value the controller drives toward.
	Setpoint float64

	// MaxOutput clamps the output to ±MaxOutput.
	MaxOutput float64

	// State
	lastError   float64
	integral    float64
	initialized bool
}

// NewPIDController creates a controller with the given gains and
// symmetric output limit.
func NewPIDController(kp, ki, kd, setpoint, maxOutput float64) *PIDController {
	return &PIDController{
		Kp:        kp,
		Ki:        ki,
		Kd:        kd,
		Setpoint:  setpoint,
		MaxOutput: maxOutput,
	}
}

// Update computes the next output from a measurement.
func (c *PIDController) Update(measured float64) float64 {
	err := c.Setpoint - measured

	// No derivative kick on the first sample.
	if !c.initialized {
		c.lastError = err
		c.initialized = true
	}

	c.integral += err

	// Anti-windup: keep the integral term inside the output range.
	if c.Ki != 0 {
		limit := c.MaxOutput / c.Ki
		c.integral = clamp(c.integral, -limit, limit)
	}

	output := c.Kp*err + c.Ki*c.integral + c.Kd*(err-c.lastError)
	c.lastError = err

	return clamp(output, -c.MaxOutput, c.MaxOutput)
}

// Error returns the last control error.
func (c *PIDController) Error() float64 {
	return c.lastError
}

// Reset clears accumulated state, used when the target is lost.
func (c *PIDController) Reset() {
	c.lastError = 0
	c.integral = 0
	c.initialized = false
}

// clamp limits a value to a range
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
