package robot

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// Mechanical attitude limits in degrees. The motion daemon rejects
// values beyond these, so clamp before sending.
const (
	MaxRoll  = 20.0
	MaxPitch = 11.0
	MaxYaw   = 15.0
)

// turnDegreesPerSecond is the measured rotation rate at turn speed 80.
const turnDegreesPerSecond = 45.0

// turnSpeed is the in-place rotation speed used for angle turns.
const turnSpeed = 80

// httpClient is a shared HTTP client with timeout to prevent blocking.
// Used by all HTTPController instances.
var httpClient = &http.Client{
	Timeout: 2 * time.Second,
}

// HTTPController implements Controller using the motion daemon's HTTP API.
// This is the primary controller used for robot movement.
type HTTPController struct {
	BaseURL string
}

// NewHTTPController creates a new HTTP-based robot controller.
// addr is the daemon's host:port.
func NewHTTPController(addr string) *HTTPController {
	return &HTTPController{
		BaseURL: fmt.Sprintf("http://%s", addr),
	}
}

// SetAttitude tilts the robot's body. Out-of-range values are clamped
// to the mechanical limits.
func (r *HTTPController) SetAttitude(roll, pitch, yaw float64) error {
	payload := map[string]interface{}{
		"roll":  clamp(roll, MaxRoll),
		"pitch": clamp(pitch, MaxPitch),
		"yaw":   clamp(yaw, MaxYaw),
	}

	return r.post("/api/attitude", payload)
}

// ResetPose returns the body to the neutral stance.
func (r *HTTPController) ResetPose() error {
	return r.post("/api/reset", map[string]interface{}{})
}

// Move walks the robot in a direction.
func (r *HTTPController) Move(direction Direction, speed int) error {
	payload := map[string]interface{}{
		"direction": string(direction),
		"speed":     clampSpeed(speed),
	}

	return r.post("/api/move", payload)
}

// Turn rotates the robot in place.
func (r *HTTPController) Turn(speed int) error {
	if speed > 100 {
		speed = 100
	}
	if speed < -100 {
		speed = -100
	}

	payload := map[string]interface{}{
		"speed": speed,
	}

	return r.post("/api/turn", payload)
}

// TurnByAngle rotates through an angle using a timed turn. The daemon
// has no odometry feedback, so the duration comes from the measured
// rotation rate at the fixed turn speed.
func (r *HTTPController) TurnByAngle(ctx context.Context, direction string, degrees float64) error {
	speed := turnSpeed
	if direction == TurnRight {
		speed = -turnSpeed
	}

	if err := r.Turn(speed); err != nil {
		return err
	}

	duration := time.Duration(math.Abs(degrees) / turnDegreesPerSecond * float64(time.Second))

	select {
	case <-ctx.Done():
		r.Stop()
		return ctx.Err()
	case <-time.After(duration):
	}

	return r.Stop()
}

// Stop halts all gait movement.
func (r *HTTPController) Stop() error {
	return r.post("/api/stop", map[string]interface{}{})
}

// SetPace adjusts gait cadence.
func (r *HTTPController) SetPace(pace Pace) error {
	payload := map[string]interface{}{
		"pace": string(pace),
	}

	return r.post("/api/pace", payload)
}

// PerformAction runs a numbered preset action.
func (r *HTTPController) PerformAction(id int) error {
	payload := map[string]interface{}{
		"id": id,
	}

	return r.post("/api/action", payload)
}

// Battery returns the charge level in percent.
func (r *HTTPController) Battery() (int, error) {
	resp, err := httpClient.Get(r.BaseURL + "/api/battery")
	if err != nil {
		return 0, fmt.Errorf("battery request failed: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return 0, fmt.Errorf("failed to decode battery status: %w", err)
	}

	return status.Level, nil
}

// DaemonState returns the motion daemon state.
func (r *HTTPController) DaemonState() (string, error) {
	resp, err := httpClient.Get(r.BaseURL + "/api/status")
	if err != nil {
		return "", fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("failed to decode daemon status: %w", err)
	}

	return status.State, nil
}

// post sends a JSON command to the daemon API.
func (r *HTTPController) post(path string, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := httpClient.Post(
		r.BaseURL+path,
		"application/json",
		strings.NewReader(string(data)),
	)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("daemon rejected %s: status %d", path, resp.StatusCode)
	}

	return nil
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func clampSpeed(speed int) int {
	if speed < 0 {
		return 0
	}
	if speed > 100 {
		return 100
	}
	return speed
}
