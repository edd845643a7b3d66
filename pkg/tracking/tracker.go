package tracking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// AttitudeController interface for body attitude movement.
type AttitudeController interface {
	SetAttitude(roll, pitch, yaw float64) error
	ResetPose() error
}

// FrameSource interface for capturing frames.
type FrameSource interface {
	ReadMat() (gocv.Mat, error)
}

// Detector locates the target in a frame.
type Detector interface {
	Detect(frame gocv.Mat) (Blob, bool)
}

// Tracker keeps a colored target centered by tilting the body.
type Tracker struct {
	config   Config
	robot    AttitudeController
	video    FrameSource
	detector Detector
	logger   *slog.Logger

	yawPID   *PIDController
	pitchPID *PIDController

	mu         sync.RWMutex
	lastBlob   Blob
	hasTarget  bool
	missedRuns int
	isRunning  bool
}

// New creates a color tracker.
func New(config Config, robot AttitudeController, video FrameSource, detector Detector) *Tracker {
	return &Tracker{
		config:   config,
		robot:    robot,
		video:    video,
		detector: detector,
		logger:   slog.Default().With("component", "tracking"),
		yawPID: NewPIDController(
			config.YawKp, config.YawKi, config.YawKd,
			config.SetpointX, config.MaxYaw),
		pitchPID: NewPIDController(
			config.PitchKp, config.PitchKi, config.PitchKd,
			config.SetpointY, config.MaxPitch),
	}
}

// LastBlob returns the most recent detection, if any.
func (t *Tracker) LastBlob() (Blob, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastBlob, t.hasTarget
}

// IsRunning reports whether the tracking loop is active.
func (t *Tracker) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isRunning
}

// Run processes frames until the context is cancelled. The pose is
// reset on exit so the robot is not left tilted.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.config.LoopInterval)
	defer ticker.Stop()

	t.mu.Lock()
	t.isRunning = true
	t.mu.Unlock()

	t.logger.Info("color tracking started",
		"interval", t.config.LoopInterval,
		"yaw_kp", t.config.YawKp,
		"pitch_kp", t.config.PitchKp,
	)

	defer func() {
		t.mu.Lock()
		t.isRunning = false
		t.mu.Unlock()
		t.robot.ResetPose()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := t.step(); err != nil {
				t.logger.Warn("frame step failed", "error", err)
			}
		}
	}
}

// step processes one frame.
func (t *Tracker) step() error {
	frame, err := t.video.ReadMat()
	if err != nil {
		return err
	}
	defer frame.Close()

	blob, found := t.detector.Detect(frame)

	if !found {
		t.mu.Lock()
		t.hasTarget = false
		t.missedRuns++
		missed := t.missedRuns
		t.mu.Unlock()

		if missed == t.config.LostFrames {
			t.logger.Info("target lost, resetting pose")
			t.yawPID.Reset()
			t.pitchPID.Reset()
			return t.robot.ResetPose()
		}
		return nil
	}

	t.mu.Lock()
	t.lastBlob = blob
	t.hasTarget = true
	t.missedRuns = 0
	t.mu.Unlock()

	yaw := t.yawPID.Update(blob.CenterX)
	pitch := t.pitchPID.Update(blob.CenterY)

	// Rightward error must turn the body right, so flip the yaw sign.
	return t.robot.SetAttitude(0, pitch, -yaw)
}
